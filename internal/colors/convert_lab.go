package colors

import "math"

// RGBDisplayToLab76 linearizes the channels before applying the sRGB to
// XYZ matrix.
func RGBDisplayToLab76(c RGBDisplay) Lab76 { return Lab76{toLab(decode(c.rgb))} }
func RGBDisplayToLab2k(c RGBDisplay) Lab2k { return Lab2k{toLab(decode(c.rgb))} }

// RGBLinearToLab76 applies the sRGB to XYZ matrix directly.
func RGBLinearToLab76(c RGBLinear) Lab76 { return Lab76{toLab(c.rgb)} }
func RGBLinearToLab2k(c RGBLinear) Lab2k { return Lab2k{toLab(c.rgb)} }

// Lab76ToRGBDisplay clips out-of-gamut colors to the RGB cube before
// gamma-encoding.
func Lab76ToRGBDisplay(c Lab76) RGBDisplay { return RGBDisplay{encode(fromLab(c.lab))} }
func Lab2kToRGBDisplay(c Lab2k) RGBDisplay { return RGBDisplay{encode(fromLab(c.lab))} }
func Lab76ToRGBLinear(c Lab76) RGBLinear   { return RGBLinear{fromLab(c.lab)} }
func Lab2kToRGBLinear(c Lab2k) RGBLinear   { return RGBLinear{fromLab(c.lab)} }

// Lab76ToLab2k keeps the coordinates and switches the difference formula.
func Lab76ToLab2k(c Lab76) Lab2k { return Lab2k(c) }
func Lab2kToLab76(c Lab2k) Lab76 { return Lab76(c) }

func decode(c rgb) rgb {
	return rgb{SRGBToLinear(c.r), SRGBToLinear(c.g), SRGBToLinear(c.b)}
}

func labF(t float64) float64 {
	if t > labDelta*labDelta*labDelta {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29
}

func labFInv(t float64) float64 {
	if t > labDelta {
		return t * t * t
	}
	return 3 * labDelta * labDelta * (t - 4.0/29)
}

func toLab(c rgb) lab {
	xyz := mul(linearToXYZ, c.Components())
	fx := labF(xyz[0] / WhitePointD65[0])
	fy := labF(xyz[1] / WhitePointD65[1])
	fz := labF(xyz[2] / WhitePointD65[2])
	return lab{
		l: clamp(116*fy-16, 0, LabMaxL),
		a: 500 * (fx - fy),
		b: 200 * (fy - fz),
	}
}

func fromLab(c lab) rgb {
	fy := (c.l + 16) / 116
	fx := fy + c.a/500
	fz := fy - c.b/200
	xyz := [3]float64{
		labFInv(fx) * WhitePointD65[0],
		labFInv(fy) * WhitePointD65[1],
		labFInv(fz) * WhitePointD65[2],
	}
	v := mul(xyzToLinear, xyz)
	return rgb{ClampUnit(v[0]), ClampUnit(v[1]), ClampUnit(v[2])}
}
