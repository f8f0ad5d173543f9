package colors

import (
	"fmt"
	"strings"
)

// Model identifies a color model. Its string form is the short name used on
// the command line, in reports and in configuration files.
type Model string

const (
	ModelRGBDisplay Model = "rgbd"
	ModelRGBLinear  Model = "rgbl"
	ModelYIQ        Model = "yiq"
	ModelHSV        Model = "hsv"
	ModelHLS        Model = "hls"
	ModelLab76      Model = "lab76"
	ModelLab2k      Model = "lab2k"
)

var models = []Model{
	ModelRGBDisplay,
	ModelRGBLinear,
	ModelYIQ,
	ModelHSV,
	ModelHLS,
	ModelLab76,
	ModelLab2k,
}

// Models returns every model in a stable order.
func Models() []Model {
	return append([]Model(nil), models...)
}

func (m Model) String() string { return string(m) }

// ParseModel accepts a model's short name in any case.
func ParseModel(s string) (Model, error) {
	want := Model(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range models {
		if m == want {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown color model %q (expected one of %s)", s, joinModels(models))
}

func joinModels(ms []Model) string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Value is implemented by every color type.
type Value interface {
	Model() Model
	Components() [3]float64
	String() string
}

// Color is the capability set shared by the color types. T is always the
// implementing type itself, so comparisons between models do not compile.
type Color[T any] interface {
	Value
	Equal(other T) bool
	AlmostEqual(other T, tol float64) bool
	Distance(other T) float64
}

var (
	_ Color[RGBDisplay] = RGBDisplay{}
	_ Color[RGBLinear]  = RGBLinear{}
	_ Color[YIQ]        = YIQ{}
	_ Color[HSV]        = HSV{}
	_ Color[HLS]        = HLS{}
	_ Color[Lab76]      = Lab76{}
	_ Color[Lab2k]      = Lab2k{}
)

// Distance is a.Distance(b), usable where only the constraint is known.
func Distance[T Color[T]](a, b T) float64 {
	return a.Distance(b)
}

// AlmostEqual reports whether a and b agree within DefaultTolerance.
func AlmostEqual[T Color[T]](a, b T) bool {
	return a.AlmostEqual(b, DefaultTolerance)
}

// DistanceOf computes the distance between two values of unknown type. It
// returns a *TypeMismatchError unless both have the same model.
func DistanceOf(a, b Value) (float64, error) {
	switch x := a.(type) {
	case RGBDisplay:
		if y, ok := b.(RGBDisplay); ok {
			return x.Distance(y), nil
		}
	case RGBLinear:
		if y, ok := b.(RGBLinear); ok {
			return x.Distance(y), nil
		}
	case YIQ:
		if y, ok := b.(YIQ); ok {
			return x.Distance(y), nil
		}
	case HSV:
		if y, ok := b.(HSV); ok {
			return x.Distance(y), nil
		}
	case HLS:
		if y, ok := b.(HLS); ok {
			return x.Distance(y), nil
		}
	case Lab76:
		if y, ok := b.(Lab76); ok {
			return x.Distance(y), nil
		}
	case Lab2k:
		if y, ok := b.(Lab2k); ok {
			return x.Distance(y), nil
		}
	}
	return 0, mismatch("distance", a, b)
}

// EqualOf reports exact equality of two values of unknown type.
func EqualOf(a, b Value) (bool, error) {
	if a.Model() != b.Model() {
		return false, mismatch("equal", a, b)
	}
	return a.Components() == b.Components(), nil
}

// AlmostEqualOf is the dynamic form of AlmostEqual with an explicit
// tolerance.
func AlmostEqualOf(a, b Value, tol float64) (bool, error) {
	switch x := a.(type) {
	case HSV:
		if y, ok := b.(HSV); ok {
			return x.AlmostEqual(y, tol), nil
		}
	case HLS:
		if y, ok := b.(HLS); ok {
			return x.AlmostEqual(y, tol), nil
		}
	default:
		if a.Model() == b.Model() {
			return within(a.Components(), b.Components(), tol), nil
		}
	}
	return false, mismatch("almost-equal", a, b)
}

func mismatch(op string, a, b Value) error {
	return &TypeMismatchError{Op: op, Left: a.Model(), Right: b.Model()}
}
