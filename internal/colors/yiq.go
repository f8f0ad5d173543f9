package colors

import "fmt"

// YIQ is the NTSC luma/chroma encoding: y in [0,1], i in ±YIQMaxI and q in
// ±YIQMaxQ.
type YIQ struct {
	y, i, q float64
}

func NewYIQ(y, i, q float64) (YIQ, error) {
	err := firstErr(
		checkRange(ModelYIQ, "y", y, 0, 1),
		checkRange(ModelYIQ, "i", i, -YIQMaxI, YIQMaxI),
		checkRange(ModelYIQ, "q", q, -YIQMaxQ, YIQMaxQ),
	)
	if err != nil {
		return YIQ{}, err
	}
	return YIQ{y, i, q}, nil
}

func MustYIQ(y, i, q float64) YIQ {
	c, err := NewYIQ(y, i, q)
	if err != nil {
		panic(err)
	}
	return c
}

func (c YIQ) Y() float64 { return c.y }
func (c YIQ) I() float64 { return c.i }
func (c YIQ) Q() float64 { return c.q }

func (YIQ) Model() Model             { return ModelYIQ }
func (c YIQ) Components() [3]float64 { return [3]float64{c.y, c.i, c.q} }

func (c YIQ) String() string {
	return fmt.Sprintf("YIQ(%.6f, %.6f, %.6f)", c.y, c.i, c.q)
}

func (c YIQ) Equal(o YIQ) bool { return c == o }

func (c YIQ) AlmostEqual(o YIQ, tol float64) bool {
	return within(c.Components(), o.Components(), tol)
}

// Distance is the Euclidean distance divided by √3, capped at 1.
func (c YIQ) Distance(o YIQ) float64 {
	return normalize(ModelYIQ, euclid(c.Components(), o.Components()))
}
