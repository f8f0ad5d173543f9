package colors

import (
	"fmt"
	"math"
)

// HSV is hue, saturation and value, each in [0,1]. Hue is cyclic: 0 and 1
// denote the same hue.
type HSV struct {
	h, s, v float64
}

func NewHSV(h, s, v float64) (HSV, error) {
	err := firstErr(
		checkRange(ModelHSV, "h", h, 0, 1),
		checkRange(ModelHSV, "s", s, 0, 1),
		checkRange(ModelHSV, "v", v, 0, 1),
	)
	if err != nil {
		return HSV{}, err
	}
	return HSV{h, s, v}, nil
}

func MustHSV(h, s, v float64) HSV {
	c, err := NewHSV(h, s, v)
	if err != nil {
		panic(err)
	}
	return c
}

// HSVFromDegrees builds an HSV from a hue angle in degrees (any value,
// reduced modulo 360) and saturation and value in percent.
func HSVFromDegrees(h, s, v float64) (HSV, error) {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return HSV{}, &ValidationError{Model: ModelHSV, Field: "h", Value: h, Min: -math.MaxFloat64, Max: math.MaxFloat64, Err: ErrOutOfRange}
	}
	if err := firstErr(
		checkRange(ModelHSV, "s", s, 0, 100),
		checkRange(ModelHSV, "v", v, 0, 100),
	); err != nil {
		return HSV{}, err
	}
	return NewHSV(floorMod(h, 360)/360, s/100, v/100)
}

// Degrees returns the hue in whole degrees [0,360) and saturation and value
// in whole percent.
func (c HSV) Degrees() (h, s, v int) {
	h = int(math.Round(c.h*360)) % 360
	return h, int(math.Round(c.s * 100)), int(math.Round(c.v * 100))
}

func (c HSV) H() float64 { return c.h }
func (c HSV) S() float64 { return c.s }
func (c HSV) V() float64 { return c.v }

func (HSV) Model() Model             { return ModelHSV }
func (c HSV) Components() [3]float64 { return [3]float64{c.h, c.s, c.v} }

func (c HSV) String() string {
	return fmt.Sprintf("HSV(%.6f, %.6f, %.6f)", c.h, c.s, c.v)
}

func (c HSV) Equal(o HSV) bool { return c == o }

// AlmostEqual compares hue along the shorter arc.
func (c HSV) AlmostEqual(o HSV, tol float64) bool {
	return hueDelta(c.h, o.h) <= tol && math.Abs(c.s-o.s) <= tol && math.Abs(c.v-o.v) <= tol
}

// Distance is the Euclidean distance with the hue difference taken along
// the shorter arc, divided by √3.
func (c HSV) Distance(o HSV) float64 {
	return normalize(ModelHSV, cylinder(c.h, o.h, c.s-o.s, c.v-o.v))
}

func cylinder(h1, h2, d1, d2 float64) float64 {
	dh := hueDelta(h1, h2)
	return math.Sqrt(dh*dh + d1*d1 + d2*d2)
}
