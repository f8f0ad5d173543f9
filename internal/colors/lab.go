package colors

import "fmt"

// lab is the CIE L*a*b* triple (D65) shared by Lab76 and Lab2k.
type lab struct {
	l, a, b float64
}

func (c lab) L() float64 { return c.l }
func (c lab) A() float64 { return c.a }
func (c lab) B() float64 { return c.b }

func (c lab) Components() [3]float64 { return [3]float64{c.l, c.a, c.b} }

func newLab(m Model, l, a, b float64) (lab, error) {
	err := firstErr(
		checkRange(m, "L", l, 0, LabMaxL),
		checkFinite(m, "a", a),
		checkFinite(m, "b", b),
	)
	if err != nil {
		return lab{}, err
	}
	return lab{l, a, b}, nil
}

// Lab76 is a CIE Lab color compared with the CIE 1976 color difference.
type Lab76 struct{ lab }

func NewLab76(l, a, b float64) (Lab76, error) {
	c, err := newLab(ModelLab76, l, a, b)
	return Lab76{c}, err
}

func MustLab76(l, a, b float64) Lab76 {
	c, err := NewLab76(l, a, b)
	if err != nil {
		panic(err)
	}
	return c
}

func (Lab76) Model() Model { return ModelLab76 }

func (c Lab76) String() string {
	return fmt.Sprintf("Lab76(%.4f, %.4f, %.4f)", c.l, c.a, c.b)
}

func (c Lab76) Equal(o Lab76) bool { return c == o }

func (c Lab76) AlmostEqual(o Lab76, tol float64) bool {
	return within(c.Components(), o.Components(), tol)
}

// DeltaE is the raw CIE76 difference, the Euclidean distance in Lab.
func (c Lab76) DeltaE(o Lab76) float64 {
	return euclid(c.Components(), o.Components())
}

// Distance is DeltaE/100, capped at 1.
func (c Lab76) Distance(o Lab76) float64 {
	return normalize(ModelLab76, c.DeltaE(o))
}

// Lab2k is a CIE Lab color compared with CIEDE2000.
type Lab2k struct{ lab }

func NewLab2k(l, a, b float64) (Lab2k, error) {
	c, err := newLab(ModelLab2k, l, a, b)
	return Lab2k{c}, err
}

func MustLab2k(l, a, b float64) Lab2k {
	c, err := NewLab2k(l, a, b)
	if err != nil {
		panic(err)
	}
	return c
}

func (Lab2k) Model() Model { return ModelLab2k }

func (c Lab2k) String() string {
	return fmt.Sprintf("Lab2k(%.4f, %.4f, %.4f)", c.l, c.a, c.b)
}

func (c Lab2k) Equal(o Lab2k) bool { return c == o }

func (c Lab2k) AlmostEqual(o Lab2k, tol float64) bool {
	return within(c.Components(), o.Components(), tol)
}

// DeltaE is the raw CIEDE2000 difference with kL = kC = kH = 1.
func (c Lab2k) DeltaE(o Lab2k) float64 {
	return ciede2000(c.lab, o.lab)
}

// Distance is DeltaE/100, capped at 1.
func (c Lab2k) Distance(o Lab2k) float64 {
	return normalize(ModelLab2k, c.DeltaE(o))
}
