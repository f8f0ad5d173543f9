package sweep

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"colordist/internal/colors"
)

// RoundTripOptions configures RoundTrips.
type RoundTripOptions struct {
	Step        int
	Workers     int
	Tolerance   float64
	Metrics     []colors.Metric
	MaxFailures int
}

// Failure is one color that did not survive a round trip.
type Failure struct {
	Metric string `json:"metric" yaml:"metric"`
	Color  string `json:"color" yaml:"color"`
	Back   string `json:"back" yaml:"back"`
}

// RoundTripReport counts checked conversions and keeps the first
// MaxFailures failures.
type RoundTripReport struct {
	Colors   int64     `json:"colors" yaml:"colors"`
	Checks   int64     `json:"checks" yaml:"checks"`
	Failed   int64     `json:"failed" yaml:"failed"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// RoundTripMetrics are the pipelines expected to invert within the default
// tolerance. YIQ from linear RGB is left out because its inverse amplifies
// error near black.
func RoundTripMetrics() []colors.Metric {
	return append(colors.Metrics(),
		colors.Metric{Model: colors.ModelHSV, Basis: colors.BasisLinear},
		colors.Metric{Model: colors.ModelHLS, Basis: colors.BasisLinear},
	)
}

// Levels returns 0, step, 2·step, ... up to and always including 255.
func Levels(step int) []int {
	var out []int
	for v := 0; v < 255; v += step {
		out = append(out, v)
	}
	return append(out, 255)
}

// RoundTrips converts every 8-bit color on the grid into each metric's model
// and back. The red channel is split across workers.
func RoundTrips(ctx context.Context, opts RoundTripOptions) (*RoundTripReport, error) {
	if opts.Step < 1 || opts.Step > 255 {
		return nil, fmt.Errorf("step must be in [1, 255], got %d", opts.Step)
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = colors.DefaultTolerance
	}
	if len(opts.Metrics) == 0 {
		opts.Metrics = RoundTripMetrics()
	}
	if opts.MaxFailures <= 0 {
		opts.MaxFailures = 20
	}
	workers := max(1, opts.Workers)
	levels := Levels(opts.Step)

	var (
		mu     sync.Mutex
		report RoundTripReport
	)
	record := func(colorsN, checks int64, failed []Failure, nFailed int64) {
		mu.Lock()
		defer mu.Unlock()
		report.Colors += colorsN
		report.Checks += checks
		report.Failed += nFailed
		for _, f := range failed {
			if len(report.Failures) >= opts.MaxFailures {
				break
			}
			report.Failures = append(report.Failures, f)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for ri := w; ri < len(levels); ri += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				var (
					nColors, checks, nFailed int64
					failed                   []Failure
				)
				for _, gv := range levels {
					for _, bv := range levels {
						c, err := colors.RGBDisplayFromEightBit(levels[ri], gv, bv)
						if err != nil {
							return err
						}
						nColors++
						for _, m := range opts.Metrics {
							checks++
							back, err := m.Revert(m.Convert(c))
							if err != nil {
								return fmt.Errorf("failed to revert %s from %s: %w", c.Hex(), m, err)
							}
							if !back.AlmostEqual(c, opts.Tolerance) {
								nFailed++
								if len(failed) < opts.MaxFailures {
									failed = append(failed, Failure{Metric: m.String(), Color: c.Hex(), Back: back.String()})
								}
							}
						}
					}
				}
				record(nColors, checks, failed, nFailed)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to sweep round trips: %w", err)
	}
	return &report, nil
}
