package colors

import (
	"encoding/hex"
	"fmt"
)

// rgb is the triple shared by the two RGB encodings. Its methods are
// promoted into RGBDisplay and RGBLinear.
type rgb struct {
	r, g, b float64
}

func (c rgb) R() float64 { return c.r }
func (c rgb) G() float64 { return c.g }
func (c rgb) B() float64 { return c.b }

func (c rgb) Components() [3]float64 { return [3]float64{c.r, c.g, c.b} }

// EightBit truncates each channel to an integer in 0..255.
func (c rgb) EightBit() (r, g, b int) {
	return int(c.r * 255), int(c.g * 255), int(c.b * 255)
}

// Hex formats the channels as #RRGGBB with uppercase digits.
func (c rgb) Hex() string {
	r, g, b := c.EightBit()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func newRGB(m Model, r, g, b float64) (rgb, error) {
	err := firstErr(
		checkRange(m, "r", r, 0, 1),
		checkRange(m, "g", g, 0, 1),
		checkRange(m, "b", b, 0, 1),
	)
	if err != nil {
		return rgb{}, err
	}
	return rgb{r, g, b}, nil
}

func rgbFromEightBit(m Model, r, g, b int) (rgb, error) {
	for _, ch := range []struct {
		name string
		v    int
	}{{"r", r}, {"g", g}, {"b", b}} {
		if ch.v < 0 || ch.v > 255 {
			return rgb{}, &ValidationError{Model: m, Field: ch.name, Value: float64(ch.v), Min: 0, Max: 255, Err: ErrOutOfRange}
		}
	}
	return rgb{float64(r) / 255, float64(g) / 255, float64(b) / 255}, nil
}

func parseRGB(m Model, s string) (rgb, error) {
	if len(s) != 7 || s[0] != '#' {
		return rgb{}, &ValidationError{Model: m, Input: s, Err: ErrMalformedHex}
	}
	bytes, err := hex.DecodeString(s[1:])
	if err != nil {
		return rgb{}, &ValidationError{Model: m, Input: s, Err: fmt.Errorf("%w: %v", ErrMalformedHex, err)}
	}
	return rgbFromEightBit(m, int(bytes[0]), int(bytes[1]), int(bytes[2]))
}

// RGBDisplay is gamma-encoded sRGB with channels in [0,1], the form in
// which colors are stored and shown.
type RGBDisplay struct{ rgb }

// NewRGBDisplay validates each channel against [0,1].
func NewRGBDisplay(r, g, b float64) (RGBDisplay, error) {
	c, err := newRGB(ModelRGBDisplay, r, g, b)
	return RGBDisplay{c}, err
}

// MustRGBDisplay is like NewRGBDisplay but panics on invalid input.
func MustRGBDisplay(r, g, b float64) RGBDisplay {
	c, err := NewRGBDisplay(r, g, b)
	if err != nil {
		panic(err)
	}
	return c
}

// RGBDisplayFromEightBit builds a color from 0..255 channel values.
func RGBDisplayFromEightBit(r, g, b int) (RGBDisplay, error) {
	c, err := rgbFromEightBit(ModelRGBDisplay, r, g, b)
	return RGBDisplay{c}, err
}

// ParseRGBDisplay accepts exactly "#RRGGBB" (hex digits in either case).
func ParseRGBDisplay(s string) (RGBDisplay, error) {
	c, err := parseRGB(ModelRGBDisplay, s)
	return RGBDisplay{c}, err
}

// MustParseRGBDisplay is like ParseRGBDisplay but panics on invalid input.
func MustParseRGBDisplay(s string) RGBDisplay {
	c, err := ParseRGBDisplay(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (RGBDisplay) Model() Model { return ModelRGBDisplay }

func (c RGBDisplay) String() string {
	return fmt.Sprintf("RGBDisplay(%.6f, %.6f, %.6f)", c.r, c.g, c.b)
}

func (c RGBDisplay) Equal(o RGBDisplay) bool { return c == o }

func (c RGBDisplay) AlmostEqual(o RGBDisplay, tol float64) bool {
	return within(c.Components(), o.Components(), tol)
}

// Distance is the Euclidean distance in the RGB cube divided by √3.
func (c RGBDisplay) Distance(o RGBDisplay) float64 {
	return normalize(ModelRGBDisplay, euclid(c.Components(), o.Components()))
}

// RGBLinear is linear-light sRGB with channels in [0,1].
type RGBLinear struct{ rgb }

// NewRGBLinear validates each channel against [0,1].
func NewRGBLinear(r, g, b float64) (RGBLinear, error) {
	c, err := newRGB(ModelRGBLinear, r, g, b)
	return RGBLinear{c}, err
}

// MustRGBLinear is like NewRGBLinear but panics on invalid input.
func MustRGBLinear(r, g, b float64) RGBLinear {
	c, err := NewRGBLinear(r, g, b)
	if err != nil {
		panic(err)
	}
	return c
}

// RGBLinearFromEightBit builds a color from 0..255 channel values taken as
// linear intensities.
func RGBLinearFromEightBit(r, g, b int) (RGBLinear, error) {
	c, err := rgbFromEightBit(ModelRGBLinear, r, g, b)
	return RGBLinear{c}, err
}

// ParseRGBLinear reads "#RRGGBB" as linear intensities.
func ParseRGBLinear(s string) (RGBLinear, error) {
	c, err := parseRGB(ModelRGBLinear, s)
	return RGBLinear{c}, err
}

func (RGBLinear) Model() Model { return ModelRGBLinear }

func (c RGBLinear) String() string {
	return fmt.Sprintf("RGBLinear(%.6f, %.6f, %.6f)", c.r, c.g, c.b)
}

func (c RGBLinear) Equal(o RGBLinear) bool { return c == o }

func (c RGBLinear) AlmostEqual(o RGBLinear, tol float64) bool {
	return within(c.Components(), o.Components(), tol)
}

// Distance is the Euclidean distance in the linear RGB cube divided by √3.
func (c RGBLinear) Distance(o RGBLinear) float64 {
	return normalize(ModelRGBLinear, euclid(c.Components(), o.Components()))
}
