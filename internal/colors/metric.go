package colors

import (
	"fmt"
	"strings"
)

// Basis selects the RGB encoding a metric starts from. It matters for YIQ,
// HSV and HLS, whose formulas accept either encoding; Lab always starts
// from linear light and the RGB metrics are their own basis.
type Basis int

const (
	BasisDisplay Basis = iota
	BasisLinear
)

func (b Basis) String() string {
	if b == BasisLinear {
		return "linear"
	}
	return "display"
}

// Metric is a fixed pipeline that compares two display colors in one model.
type Metric struct {
	Model Model
	Basis Basis
}

// Metrics returns one metric per model, each starting from display RGB.
func Metrics() []Metric {
	ms := make([]Metric, len(models))
	for i, m := range models {
		ms[i] = Metric{Model: m}
	}
	return ms
}

// ParseMetric accepts a model name optionally suffixed with ":linear" or
// ":display", e.g. "hsv:linear".
func ParseMetric(s string) (Metric, error) {
	name, basis, found := strings.Cut(s, ":")
	m, err := ParseModel(name)
	if err != nil {
		return Metric{}, err
	}
	metric := Metric{Model: m}
	if found {
		switch strings.ToLower(strings.TrimSpace(basis)) {
		case "display":
		case "linear":
			metric.Basis = BasisLinear
		default:
			return Metric{}, fmt.Errorf("unknown basis %q in metric %q (expected display or linear)", basis, s)
		}
	}
	return metric, nil
}

func (m Metric) usesBasis() bool {
	return m.Model == ModelYIQ || m.Model == ModelHSV || m.Model == ModelHLS
}

func (m Metric) String() string {
	if m.usesBasis() && m.Basis == BasisLinear {
		return string(m.Model) + ":linear"
	}
	return string(m.Model)
}

// Convert maps a display color into the metric's model.
func (m Metric) Convert(c RGBDisplay) Value {
	src := c.rgb
	if m.Basis == BasisLinear && m.usesBasis() {
		src = RGBDisplayToLinear(c).rgb
	}
	switch m.Model {
	case ModelRGBDisplay:
		return c
	case ModelRGBLinear:
		return RGBDisplayToLinear(c)
	case ModelYIQ:
		return toYIQ(src)
	case ModelHSV:
		return toHSV(src)
	case ModelHLS:
		return toHLS(src)
	case ModelLab76:
		return RGBDisplayToLab76(c)
	case ModelLab2k:
		return RGBDisplayToLab2k(c)
	}
	panic(fmt.Sprintf("colors: unknown model %q", m.Model))
}

// Between is the normalized distance between a and b in the metric's model.
func (m Metric) Between(a, b RGBDisplay) float64 {
	d, err := DistanceOf(m.Convert(a), m.Convert(b))
	if err != nil {
		panic(err)
	}
	return d
}

// Revert maps a value produced by Convert back to display RGB. It fails
// with a *TypeMismatchError when v is not of the metric's model.
func (m Metric) Revert(v Value) (RGBDisplay, error) {
	if v.Model() != m.Model {
		return RGBDisplay{}, &TypeMismatchError{Op: "revert", Left: m.Model, Right: v.Model()}
	}
	linear := m.Basis == BasisLinear
	switch x := v.(type) {
	case RGBDisplay:
		return x, nil
	case RGBLinear:
		return RGBLinearToDisplay(x), nil
	case Lab76:
		return Lab76ToRGBDisplay(x), nil
	case Lab2k:
		return Lab2kToRGBDisplay(x), nil
	case YIQ:
		if linear {
			return RGBLinearToDisplay(YIQToRGBLinear(x)), nil
		}
		return YIQToRGBDisplay(x), nil
	case HSV:
		if linear {
			return RGBLinearToDisplay(HSVToRGBLinear(x)), nil
		}
		return HSVToRGBDisplay(x), nil
	case HLS:
		if linear {
			return RGBLinearToDisplay(HLSToRGBLinear(x)), nil
		}
		return HLSToRGBDisplay(x), nil
	}
	return RGBDisplay{}, &TypeMismatchError{Op: "revert", Left: m.Model, Right: v.Model()}
}
