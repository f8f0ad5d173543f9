package colors

import "math"

func deg2Rad(deg float64) float64 { return deg * math.Pi / 180 }

// ciede2000 follows Sharma, Wu and Dalal, "The CIEDE2000 Color-Difference
// Formula: Implementation Notes, Supplementary Test Data, and Mathematical
// Observations" (2005), with kL = kC = kH = 1. Equation numbers refer to
// that paper. When either chroma is zero the mean hue is the plain sum of
// the hues (Eq. 14).
func ciede2000(c1, c2 lab) float64 {
	// Step 1: C'i, h'i (Eq. 2-7).
	C1 := math.Hypot(c1.a, c1.b)
	C2 := math.Hypot(c2.a, c2.b)
	G := 0.5 * (1 - math.Sqrt(chromaWeight(C1/2+C2/2)))
	a1 := (1 + G) * c1.a
	a2 := (1 + G) * c2.a
	cp1 := math.Hypot(a1, c1.b)
	cp2 := math.Hypot(a2, c2.b)
	hp1 := hueAngle(c1.b, a1)
	hp2 := hueAngle(c2.b, a2)

	// Step 2: ΔL', ΔC', ΔH' (Eq. 8-11).
	dL := c2.l - c1.l
	dC := cp2 - cp1
	var dh float64
	if cp1*cp2 != 0 {
		dh = hp2 - hp1
		if dh > math.Pi {
			dh -= 2 * math.Pi
		} else if dh < -math.Pi {
			dh += 2 * math.Pi
		}
	}

	// Step 3: ΔE00 (Eq. 12-22).
	barL := (c1.l + c2.l) / 2
	barCp := cp1/2 + cp2/2
	barh := hp1 + hp2
	if cp1*cp2 != 0 {
		switch {
		case math.Abs(hp1-hp2) <= math.Pi:
			barh /= 2
		case barh < 2*math.Pi:
			barh = (barh + 2*math.Pi) / 2
		default:
			barh = (barh - 2*math.Pi) / 2
		}
	}
	T := 1 - 0.17*math.Cos(barh-deg2Rad(30)) +
		0.24*math.Cos(2*barh) +
		0.32*math.Cos(3*barh+deg2Rad(6)) -
		0.20*math.Cos(4*barh-deg2Rad(63))
	dTheta := deg2Rad(30) * math.Exp(-math.Pow((barh-deg2Rad(275))/deg2Rad(25), 2))
	RC := 2 * math.Sqrt(chromaWeight(barCp))
	l50 := (barL - 50) * (barL - 50)
	SL := 1 + 0.015*l50/math.Sqrt(20+l50)
	SC := 1 + 0.045*barCp
	SH := 1 + 0.015*barCp*T
	RT := -math.Sin(2*dTheta) * RC

	// ΔH'/SH with the square roots split so large chromas do not overflow.
	tL, tC := dL/SL, dC/SC
	tH := 2 * (math.Sqrt(cp1) / SH) * math.Sqrt(cp2) * math.Sin(dh/2)
	dE := math.Sqrt(tL*tL + tC*tC + tH*tH + RT*tC*tH) // Eq. 22
	if math.IsNaN(dE) {
		// Chroma past the float64 range.
		return math.Inf(1)
	}
	return dE
}

// chromaWeight is C^7/(C^7+25^7) written as 1/(1+(25/C)^7), which stays
// finite for any chroma.
func chromaWeight(c float64) float64 {
	if c == 0 {
		return 0
	}
	return 1 / (1 + math.Pow(25/c, 7))
}

// hueAngle is atan2(b, a) in [0, 2π), zero for the achromatic axis.
func hueAngle(b, a float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := math.Atan2(b, a)
	if h < 0 {
		h += 2 * math.Pi
	}
	return h
}
