package colors

import "math"

// DefaultTolerance is the per-component slack used by AlmostEqual callers
// that have no better bound: half of one 8-bit step.
const DefaultTolerance = 1.0 / 512

// sRGB transfer curve.
const (
	srgbDecodeThreshold = 0.04045
	srgbEncodeThreshold = 0.0031308
	srgbLinearSlope     = 12.92
	srgbOffset          = 0.055
	srgbGamma           = 2.4
)

// YIQ (NTSC 1953) component bounds for inputs in the unit RGB cube.
const (
	YIQMaxI = 0.5961
	YIQMaxQ = 0.523
)

var (
	rgbToYIQ = [3][3]float64{
		{0.299, 0.587, 0.114},
		{0.596, -0.274, -0.322},
		{0.211, -0.523, 0.312},
	}
	yiqToRGB = [3][3]float64{
		{1, 0.956, 0.621},
		{1, -0.272, -0.647},
		{1, -1.106, 1.703},
	}
)

// CIE Lab under D65, unit-scaled tristimulus values.
var (
	WhitePointD65 = [3]float64{0.95047, 1.0, 1.08883}

	linearToXYZ = [3][3]float64{
		{0.4124564, 0.3575761, 0.1804375},
		{0.2126729, 0.7151522, 0.0721750},
		{0.0193339, 0.1191920, 0.9503041},
	}
	xyzToLinear = [3][3]float64{
		{3.2404542, -1.5371385, -0.4985314},
		{-0.9692660, 1.8760108, 0.0415560},
		{0.0556434, -0.2040259, 1.0572252},
	}
)

const (
	labDelta = 6.0 / 29
	LabMaxL  = 100
)

// Largest ΔE values observed between two colors of the sRGB gamut.
const (
	GamutMaxDeltaE76   = 258.683
	GamutMaxDeltaE2000 = 128.299
)

var sqrt3 = math.Sqrt(3)

// Normalization maps a raw distance into [0,1]: raw/Scale, limited to 1
// when Cap is set.
type Normalization struct {
	Scale float64
	Cap   bool
}

var normalizations = map[Model]Normalization{
	ModelRGBDisplay: {Scale: sqrt3},
	ModelRGBLinear:  {Scale: sqrt3},
	ModelYIQ:        {Scale: sqrt3, Cap: true},
	ModelHSV:        {Scale: sqrt3},
	ModelHLS:        {Scale: sqrt3},
	ModelLab76:      {Scale: LabMaxL, Cap: true},
	ModelLab2k:      {Scale: LabMaxL, Cap: true},
}

// NormalizationOf reports the fixed scale of a model's Distance.
func NormalizationOf(m Model) (Normalization, bool) {
	n, ok := normalizations[m]
	return n, ok
}

func normalize(m Model, raw float64) float64 {
	n := normalizations[m]
	d := raw / n.Scale
	if n.Cap && d > 1 {
		d = 1
	}
	if !(d >= 0 && d <= 1) {
		panic("colors: " + string(m) + " distance out of [0,1]")
	}
	return d
}

func mul(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}
