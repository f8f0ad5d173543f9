package colors

import (
	"fmt"
	"math"
)

// HLS is hue, lightness and saturation, each in [0,1]. Hue is cyclic.
type HLS struct {
	h, l, s float64
}

func NewHLS(h, l, s float64) (HLS, error) {
	err := firstErr(
		checkRange(ModelHLS, "h", h, 0, 1),
		checkRange(ModelHLS, "l", l, 0, 1),
		checkRange(ModelHLS, "s", s, 0, 1),
	)
	if err != nil {
		return HLS{}, err
	}
	return HLS{h, l, s}, nil
}

func MustHLS(h, l, s float64) HLS {
	c, err := NewHLS(h, l, s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c HLS) H() float64 { return c.h }
func (c HLS) L() float64 { return c.l }
func (c HLS) S() float64 { return c.s }

func (HLS) Model() Model             { return ModelHLS }
func (c HLS) Components() [3]float64 { return [3]float64{c.h, c.l, c.s} }

func (c HLS) String() string {
	return fmt.Sprintf("HLS(%.6f, %.6f, %.6f)", c.h, c.l, c.s)
}

func (c HLS) Equal(o HLS) bool { return c == o }

func (c HLS) AlmostEqual(o HLS, tol float64) bool {
	return hueDelta(c.h, o.h) <= tol && math.Abs(c.l-o.l) <= tol && math.Abs(c.s-o.s) <= tol
}

// Distance is the HSV-style cylindrical distance over (h, l, s).
func (c HLS) Distance(o HLS) float64 {
	return normalize(ModelHLS, cylinder(c.h, o.h, c.l-o.l, c.s-o.s))
}
