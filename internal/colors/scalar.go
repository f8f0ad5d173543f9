package colors

import "math"

// ClampUnit limits x to [0,1]. It is applied to conversion outputs only,
// where it absorbs floating-point roundoff; constructors never clamp.
func ClampUnit(x float64) float64 {
	return clamp(x, 0, 1)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// SRGBToLinear decodes one gamma-encoded sRGB channel (IEC 61966-2-1).
func SRGBToLinear(c float64) float64 {
	if c <= srgbDecodeThreshold {
		return c / srgbLinearSlope
	}
	return math.Pow((c+srgbOffset)/(1+srgbOffset), srgbGamma)
}

// LinearToSRGB encodes one linear-light channel with the sRGB curve.
func LinearToSRGB(c float64) float64 {
	if c <= srgbEncodeThreshold {
		return srgbLinearSlope * c
	}
	return (1+srgbOffset)*math.Pow(c, 1/srgbGamma) - srgbOffset
}

// floorMod is the modulo whose result takes the sign of y.
func floorMod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m < 0 {
		m += y
	}
	return m
}

// hueDelta is the length of the shorter arc between two hues on the unit
// circle, in [0, 0.5].
func hueDelta(h1, h2 float64) float64 {
	d := math.Abs(h1 - h2)
	return math.Min(d, 1-d)
}

func checkRange(m Model, field string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return &ValidationError{Model: m, Field: field, Value: v, Min: lo, Max: hi, Err: ErrOutOfRange}
	}
	return nil
}

func checkFinite(m Model, field string, v float64) error {
	return checkRange(m, field, v, -math.MaxFloat64, math.MaxFloat64)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func euclid(a, b [3]float64) float64 {
	d0, d1, d2 := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(d0*d0 + d1*d1 + d2*d2)
}

func within(a, b [3]float64, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
