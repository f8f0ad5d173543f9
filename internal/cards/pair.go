// Package cards holds the color pairs shown to study participants and the
// tools used to pick new ones.
package cards

import (
	"fmt"

	"colordist/internal/colors"
)

// Pair is two display colors shown side by side.
type Pair struct {
	A colors.RGBDisplay
	B colors.RGBDisplay
}

// NewPair returns the pair in canonical order, see Ordered.
func NewPair(a, b colors.RGBDisplay) Pair {
	return Pair{A: a, B: b}.Ordered()
}

// ParsePair parses two #RRGGBB strings into a canonical pair.
func ParsePair(a, b string) (Pair, error) {
	ca, err := colors.ParseRGBDisplay(a)
	if err != nil {
		return Pair{}, err
	}
	cb, err := colors.ParseRGBDisplay(b)
	if err != nil {
		return Pair{}, err
	}
	return NewPair(ca, cb), nil
}

// Ordered swaps A and B when B's 8-bit triple sorts before A's, so the same
// two colors always produce the same pair regardless of screen side.
func (p Pair) Ordered() Pair {
	if less(p.B, p.A) {
		return Pair{A: p.B, B: p.A}
	}
	return p
}

// Identical reports whether both sides show the same 8-bit color.
func (p Pair) Identical() bool {
	return p.A.Hex() == p.B.Hex()
}

// Key identifies the pair by its canonical hex codes.
func (p Pair) Key() string {
	o := p.Ordered()
	return o.A.Hex() + "/" + o.B.Hex()
}

func (p Pair) String() string {
	return fmt.Sprintf("%s %s", p.A.Hex(), p.B.Hex())
}

// Distance is the pair's normalized distance under metric m.
func (p Pair) Distance(m colors.Metric) float64 {
	return m.Between(p.A, p.B)
}

func less(a, b colors.RGBDisplay) bool {
	ar, ag, ab := a.EightBit()
	br, bg, bb := b.EightBit()
	if ar != br {
		return ar < br
	}
	if ag != bg {
		return ag < bg
	}
	return ab < bb
}
