package colors

import "math"

// Conversion outputs are clamped into the target's declared ranges. The
// formulas only leave those ranges through floating-point roundoff, except
// where noted (YIQ and Lab to RGB clip out-of-gamut values).

func RGBDisplayToLinear(c RGBDisplay) RGBLinear {
	return RGBLinear{rgb{
		ClampUnit(SRGBToLinear(c.r)),
		ClampUnit(SRGBToLinear(c.g)),
		ClampUnit(SRGBToLinear(c.b)),
	}}
}

func RGBLinearToDisplay(c RGBLinear) RGBDisplay {
	return RGBDisplay{encode(c.rgb)}
}

func encode(c rgb) rgb {
	return rgb{
		ClampUnit(LinearToSRGB(c.r)),
		ClampUnit(LinearToSRGB(c.g)),
		ClampUnit(LinearToSRGB(c.b)),
	}
}

// YIQ

func RGBDisplayToYIQ(c RGBDisplay) YIQ { return toYIQ(c.rgb) }
func RGBLinearToYIQ(c RGBLinear) YIQ   { return toYIQ(c.rgb) }

// YIQToRGBDisplay clips channels that fall outside the RGB cube.
func YIQToRGBDisplay(c YIQ) RGBDisplay { return RGBDisplay{fromYIQ(c)} }
func YIQToRGBLinear(c YIQ) RGBLinear   { return RGBLinear{fromYIQ(c)} }

func toYIQ(c rgb) YIQ {
	v := mul(rgbToYIQ, c.Components())
	return YIQ{
		ClampUnit(v[0]),
		clamp(v[1], -YIQMaxI, YIQMaxI),
		clamp(v[2], -YIQMaxQ, YIQMaxQ),
	}
}

func fromYIQ(c YIQ) rgb {
	v := mul(yiqToRGB, c.Components())
	return rgb{ClampUnit(v[0]), ClampUnit(v[1]), ClampUnit(v[2])}
}

// HSV

func RGBDisplayToHSV(c RGBDisplay) HSV { return toHSV(c.rgb) }
func RGBLinearToHSV(c RGBLinear) HSV   { return toHSV(c.rgb) }
func HSVToRGBDisplay(c HSV) RGBDisplay { return RGBDisplay{fromHSV(c)} }
func HSVToRGBLinear(c HSV) RGBLinear   { return RGBLinear{fromHSV(c)} }

// hue returns the hue in [0,1) of a chromatic color with maximum mx and
// spread d > 0.
func hue(c rgb, mx, d float64) float64 {
	var h float64
	switch mx {
	case c.r:
		h = floorMod((c.g-c.b)/d, 6)
	case c.g:
		h = (c.b-c.r)/d + 2
	default:
		h = (c.r-c.g)/d + 4
	}
	return floorMod(h/6, 1)
}

func toHSV(c rgb) HSV {
	mx := math.Max(c.r, math.Max(c.g, c.b))
	mn := math.Min(c.r, math.Min(c.g, c.b))
	d := mx - mn
	var h, s float64
	if d != 0 {
		h = hue(c, mx, d)
	}
	if mx != 0 {
		s = d / mx
	}
	return HSV{ClampUnit(h), ClampUnit(s), mx}
}

func fromHSV(c HSV) rgb {
	h := floorMod(c.h, 1) * 6
	sector := math.Floor(h)
	f := h - sector
	v := c.v
	p := v * (1 - c.s)
	q := v * (1 - c.s*f)
	t := v * (1 - c.s*(1-f))
	var r, g, b float64
	switch int(sector) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return rgb{ClampUnit(r), ClampUnit(g), ClampUnit(b)}
}

// HLS

func RGBDisplayToHLS(c RGBDisplay) HLS { return toHLS(c.rgb) }
func RGBLinearToHLS(c RGBLinear) HLS   { return toHLS(c.rgb) }
func HLSToRGBDisplay(c HLS) RGBDisplay { return RGBDisplay{fromHLS(c)} }
func HLSToRGBLinear(c HLS) RGBLinear   { return RGBLinear{fromHLS(c)} }

func toHLS(c rgb) HLS {
	mx := math.Max(c.r, math.Max(c.g, c.b))
	mn := math.Min(c.r, math.Min(c.g, c.b))
	l := (mx + mn) / 2
	if mx == mn {
		return HLS{0, ClampUnit(l), 0}
	}
	d := mx - mn
	var s float64
	if l <= 0.5 {
		s = d / (mx + mn)
	} else {
		s = d / (2 - mx - mn)
	}
	return HLS{ClampUnit(hue(c, mx, d)), ClampUnit(l), ClampUnit(s)}
}

func fromHLS(c HLS) rgb {
	if c.s == 0 {
		return rgb{c.l, c.l, c.l}
	}
	var m2 float64
	if c.l <= 0.5 {
		m2 = c.l * (1 + c.s)
	} else {
		m2 = c.l + c.s - c.l*c.s
	}
	m1 := 2*c.l - m2
	return rgb{
		ClampUnit(hlsChannel(m1, m2, c.h+1.0/3)),
		ClampUnit(hlsChannel(m1, m2, c.h)),
		ClampUnit(hlsChannel(m1, m2, c.h-1.0/3)),
	}
}

func hlsChannel(m1, m2, h float64) float64 {
	h = floorMod(h, 1)
	switch {
	case h < 1.0/6:
		return m1 + (m2-m1)*h*6
	case h < 0.5:
		return m2
	case h < 2.0/3:
		return m1 + (m2-m1)*(2.0/3-h)*6
	default:
		return m1
	}
}
