package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"colordist/internal/colors"
)

// parseColorArg accepts "#RRGGBB" or an 8-bit triple "r,g,b".
func parseColorArg(s string) (colors.RGBDisplay, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return colors.ParseRGBDisplay(s)
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return colors.RGBDisplay{}, fmt.Errorf("invalid color %q, expected #RRGGBB or r,g,b", s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return colors.RGBDisplay{}, fmt.Errorf("invalid color component %q: %w", p, err)
		}
		v[i] = n
	}
	return colors.RGBDisplayFromEightBit(v[0], v[1], v[2])
}

// parseTriple reads three comma-separated floats.
func parseTriple(s string) ([3]float64, error) {
	var v [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("expected three comma-separated numbers, got %q", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return v, fmt.Errorf("invalid number %q: %w", p, err)
		}
		v[i] = f
	}
	return v, nil
}

// parseValue builds a color of the given model from its components.
// RGBDisplay additionally accepts the forms parseColorArg does.
func parseValue(m colors.Model, s string) (colors.Value, error) {
	if m == colors.ModelRGBDisplay && (strings.HasPrefix(strings.TrimSpace(s), "#") || !strings.Contains(s, ".")) {
		return parseColorArg(s)
	}
	if m == colors.ModelRGBLinear && strings.HasPrefix(strings.TrimSpace(s), "#") {
		return colors.ParseRGBLinear(strings.TrimSpace(s))
	}
	v, err := parseTriple(s)
	if err != nil {
		return nil, err
	}
	switch m {
	case colors.ModelRGBDisplay:
		return colors.NewRGBDisplay(v[0], v[1], v[2])
	case colors.ModelRGBLinear:
		return colors.NewRGBLinear(v[0], v[1], v[2])
	case colors.ModelYIQ:
		return colors.NewYIQ(v[0], v[1], v[2])
	case colors.ModelHSV:
		return colors.NewHSV(v[0], v[1], v[2])
	case colors.ModelHLS:
		return colors.NewHLS(v[0], v[1], v[2])
	case colors.ModelLab76:
		return colors.NewLab76(v[0], v[1], v[2])
	case colors.ModelLab2k:
		return colors.NewLab2k(v[0], v[1], v[2])
	}
	return nil, fmt.Errorf("unknown model %q", m)
}

// parseMetrics resolves metric names; an empty list means every model.
func parseMetrics(names []string) ([]colors.Metric, error) {
	if len(names) == 0 {
		return colors.Metrics(), nil
	}
	out := make([]colors.Metric, 0, len(names))
	for _, n := range names {
		m, err := colors.ParseMetric(n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// writeOutput writes data to path, creating parent directories, or to
// stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
