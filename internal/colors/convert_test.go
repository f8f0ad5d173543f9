package colors

import (
	"math/rand"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestKnownConversions(t *testing.T) {
	red := MustRGBDisplay(1, 0, 0)
	white := MustRGBDisplay(1, 1, 1)
	uaBlue, _ := RGBDisplayFromEightBit(0, 87, 183)

	tests := []struct {
		name string
		got  Value
		want [3]float64
		tol  float64
	}{
		{"red to hsv", RGBDisplayToHSV(red), [3]float64{0, 1, 1}, 1e-12},
		{"red to hls", RGBDisplayToHLS(red), [3]float64{0, 0.5, 1}, 1e-12},
		{"red to yiq", RGBDisplayToYIQ(red), [3]float64{0.299, 0.596, 0.211}, 1e-12},
		{"white to yiq", RGBDisplayToYIQ(white), [3]float64{1, 0, 0}, 1e-12},
		{"white to lab", RGBDisplayToLab76(white), [3]float64{100, 0, 0}, 1e-3},
		{"black to lab", RGBDisplayToLab2k(MustRGBDisplay(0, 0, 0)), [3]float64{0, 0, 0}, 1e-12},
		{"ua blue to lab", RGBDisplayToLab76(uaBlue), [3]float64{38.2585455, 16.6265973, -56.6691064}, 1e-5},
		{"hsv cyan", RGBDisplayToHSV(MustRGBDisplay(0, 1, 1)), [3]float64{0.5, 1, 1}, 1e-12},
		{"hls gray", RGBDisplayToHLS(MustRGBDisplay(0.5, 0.5, 0.5)), [3]float64{0, 0.5, 0}, 0},
		{"hsv magenta to rgb", HSVToRGBDisplay(MustHSV(5.0/6, 1, 1)), [3]float64{1, 0, 1}, 1e-12},
		{"hls yellow to rgb", HLSToRGBDisplay(MustHLS(1.0/6, 0.5, 1)), [3]float64{1, 1, 0}, 1e-12},
		{"linear mid gray", RGBDisplayToLinear(MustRGBDisplay(0.5, 0.5, 0.5)), [3]float64{0.21404114048223255, 0.21404114048223255, 0.21404114048223255}, 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.got.Components()
			if !within(got, tt.want, tt.tol) {
				t.Errorf("%s = %v, expected %v", tt.got, got, tt.want)
			}
		})
	}
}

func TestYIQToRGBClipsOutOfGamut(t *testing.T) {
	c := YIQToRGBDisplay(MustYIQ(1, 0.5961, 0.523))
	for i, v := range c.Components() {
		if v < 0 || v > 1 {
			t.Errorf("channel %d = %g outside [0,1]", i, v)
		}
	}
	if c.R() != 1 {
		t.Errorf("R() = %g, expected clipped 1", c.R())
	}
}

func TestLabToRGBClipsOutOfGamut(t *testing.T) {
	c := Lab2kToRGBLinear(MustLab2k(50, 200, -200))
	for i, v := range c.Components() {
		if v < 0 || v > 1 {
			t.Errorf("channel %d = %g outside [0,1]", i, v)
		}
	}
}

func TestLabMetricSwitch(t *testing.T) {
	a := MustLab76(50, 10, -10)
	b := Lab76ToLab2k(a)
	if b.Components() != a.Components() {
		t.Errorf("Lab76ToLab2k changed coordinates: %v -> %v", a, b)
	}
	if Lab2kToLab76(b) != a {
		t.Errorf("Lab2kToLab76(Lab76ToLab2k(a)) != a")
	}
}

func TestLabFromLinearSkipsDecoding(t *testing.T) {
	d := MustRGBDisplay(0.5, 0.5, 0.5)
	viaDisplay := RGBDisplayToLab76(d)
	viaLinear := RGBLinearToLab76(RGBDisplayToLinear(d))
	if !viaDisplay.AlmostEqual(viaLinear, 1e-9) {
		t.Errorf("RGBDisplayToLab76 = %v, RGBLinearToLab76 = %v", viaDisplay, viaLinear)
	}
	if !approx(viaDisplay.L(), 53.38896705407974, 1e-4) {
		t.Errorf("L of mid gray = %g", viaDisplay.L())
	}
}

// Each model must reproduce the display color it came from.
func TestRoundTripGrid(t *testing.T) {
	metrics := append(Metrics(),
		Metric{Model: ModelHSV, Basis: BasisLinear},
		Metric{Model: ModelHLS, Basis: BasisLinear},
	)
	step := 5
	if testing.Short() {
		step = 17
	}
	for _, m := range metrics {
		t.Run(m.String(), func(t *testing.T) {
			for r := 0; r <= 255; r += step {
				for g := 0; g <= 255; g += step {
					for b := 0; b <= 255; b += step {
						c, _ := RGBDisplayFromEightBit(r, g, b)
						v := m.Convert(c)
						back, err := m.Revert(v)
						if err != nil {
							t.Fatalf("Revert(%v): %v", v, err)
						}
						if !AlmostEqual(c, back) {
							t.Fatalf("%s -> %v -> %s", c.Hex(), v, back)
						}
						again := m.Convert(back)
						if ok, _ := AlmostEqualOf(v, again, DefaultTolerance); !ok {
							t.Fatalf("%v -> %s -> %v", v, back.Hex(), again)
						}
					}
				}
			}
		})
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20000; i++ {
		c := MustRGBDisplay(rng.Float64(), rng.Float64(), rng.Float64())
		for _, m := range Metrics() {
			back, err := m.Revert(m.Convert(c))
			if err != nil {
				t.Fatalf("Revert: %v", err)
			}
			if !AlmostEqual(c, back) {
				t.Fatalf("%s: %v round-tripped to %v", m, c, back)
			}
		}
	}
}

func TestRoundTripLinearTargets(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 5000; i++ {
		lin := MustRGBLinear(rng.Float64(), rng.Float64(), rng.Float64())
		tests := []struct {
			name string
			got  RGBLinear
		}{
			{"yiq", YIQToRGBLinear(RGBLinearToYIQ(lin))},
			{"hsv", HSVToRGBLinear(RGBLinearToHSV(lin))},
			{"hls", HLSToRGBLinear(RGBLinearToHLS(lin))},
			{"lab76", Lab76ToRGBLinear(RGBLinearToLab76(lin))},
			{"lab2k", Lab2kToRGBLinear(RGBLinearToLab2k(lin))},
		}
		for _, tt := range tests {
			if !tt.got.AlmostEqual(lin, DefaultTolerance) {
				t.Fatalf("%s: %v round-tripped to %v", tt.name, lin, tt.got)
			}
		}
	}
}

func TestRevertRejectsForeignModel(t *testing.T) {
	_, err := Metric{Model: ModelHSV}.Revert(MustHLS(0, 0, 0))
	if err == nil {
		t.Fatalf("Revert of HLS through an HSV metric succeeded")
	}
}

func colorfulOf(c RGBDisplay) colorful.Color {
	return colorful.Color{R: c.R(), G: c.G(), B: c.B()}
}

// go-colorful is an independent implementation of the same formulas.
func TestAgainstColorful(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		c := MustRGBDisplay(rng.Float64(), rng.Float64(), rng.Float64())
		ref := colorfulOf(c)

		h, s, v := ref.Hsv()
		hsv := RGBDisplayToHSV(c)
		if hueDelta(hsv.H(), h/360) > 1e-9 || !approx(hsv.S(), s, 1e-9) || !approx(hsv.V(), v, 1e-9) {
			t.Errorf("RGBDisplayToHSV(%v) = %v, colorful gives (%g°, %g, %g)", c, hsv, h, s, v)
		}

		h, s, l := ref.Hsl()
		hls := RGBDisplayToHLS(c)
		if hueDelta(hls.H(), h/360) > 1e-9 || !approx(hls.S(), s, 1e-9) || !approx(hls.L(), l, 1e-9) {
			t.Errorf("RGBDisplayToHLS(%v) = %v, colorful gives (%g°, %g, %g)", c, hls, h, s, l)
		}

		lr, lg, lb := ref.LinearRgb()
		lin := RGBDisplayToLinear(c)
		if !within(lin.Components(), [3]float64{lr, lg, lb}, 1e-9) {
			t.Errorf("RGBDisplayToLinear(%v) = %v, colorful gives (%g, %g, %g)", c, lin, lr, lg, lb)
		}

		L, a, b := ref.Lab()
		lab := RGBDisplayToLab76(c)
		if !within(lab.Components(), [3]float64{L * 100, a * 100, b * 100}, 0.1) {
			t.Errorf("RGBDisplayToLab76(%v) = %v, colorful gives (%g, %g, %g)", c, lab, L*100, a*100, b*100)
		}
	}
}
