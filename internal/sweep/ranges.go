package sweep

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"colordist/internal/colors"
)

// RangeOptions configures RandomPairs.
type RangeOptions struct {
	Pairs   int
	Workers int
	Seed    int64
	Metrics []colors.Metric
}

// RangeReport holds one Summary per metric plus the largest raw ΔE values
// seen, which calibrate the Lab normalization.
type RangeReport struct {
	Pairs       int64     `json:"pairs" yaml:"pairs"`
	Summaries   []Summary `json:"summaries" yaml:"summaries"`
	MaxDeltaE76 float64   `json:"max_delta_e76" yaml:"max_delta_e76"`
	MaxDeltaE00 float64   `json:"max_delta_e2000" yaml:"max_delta_e2000"`
}

type rangeAcc struct {
	perMetric []accumulator
	maxE76    float64
	maxE00    float64
}

func newRangeAcc(n int) *rangeAcc {
	r := &rangeAcc{perMetric: make([]accumulator, n)}
	for i := range r.perMetric {
		r.perMetric[i] = newAccumulator()
	}
	return r
}

func (r *rangeAcc) measure(metrics []colors.Metric, a, b colors.RGBDisplay) {
	for i, m := range metrics {
		r.perMetric[i].add(m.Between(a, b))
	}
	r.maxE76 = max(r.maxE76, colors.RGBDisplayToLab76(a).DeltaE(colors.RGBDisplayToLab76(b)))
	r.maxE00 = max(r.maxE00, colors.RGBDisplayToLab2k(a).DeltaE(colors.RGBDisplayToLab2k(b)))
}

func (r *rangeAcc) merge(o *rangeAcc) {
	for i := range r.perMetric {
		r.perMetric[i].merge(o.perMetric[i])
	}
	r.maxE76 = max(r.maxE76, o.maxE76)
	r.maxE00 = max(r.maxE00, o.maxE00)
}

// Anchors are the fixed pairs every range study includes: identical colors,
// black against white, primaries and near-identical grays.
func Anchors() [][2]colors.RGBDisplay {
	c := colors.MustRGBDisplay
	return [][2]colors.RGBDisplay{
		{c(0, 0, 0), c(0, 0, 0)},
		{c(1, 1, 1), c(1, 1, 1)},
		{c(0, 0, 0), c(1, 1, 1)},
		{c(1, 1, 1), c(0, 0, 0)},
		{c(1, 0, 0), c(0, 1, 0)},
		{c(0, 1, 0), c(0, 0, 1)},
		{c(0.5, 0.5, 0.5), c(0.5001, 0.5001, 0.5001)},
		{c(0.2, 0.3, 0.4), c(0.2001, 0.3001, 0.4001)},
	}
}

// RandomPairs measures the anchors plus opts.Pairs uniformly random display
// pairs under every metric. Worker w draws from its own source seeded with
// Seed+w, so a run is reproducible for a fixed seed and worker count.
func RandomPairs(ctx context.Context, opts RangeOptions) (*RangeReport, error) {
	if opts.Pairs < 0 {
		return nil, fmt.Errorf("pair count must be non-negative, got %d", opts.Pairs)
	}
	if len(opts.Metrics) == 0 {
		opts.Metrics = colors.Metrics()
	}
	workers := max(1, opts.Workers)

	parts := make([]*rangeAcc, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		n := opts.Pairs / workers
		if w < opts.Pairs%workers {
			n++
		}
		parts[w] = newRangeAcc(len(opts.Metrics))
		g.Go(func() error {
			rng := rand.New(rand.NewSource(opts.Seed + int64(w)))
			acc := parts[w]
			for i := 0; i < n; i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				acc.measure(opts.Metrics, randomColor(rng), randomColor(rng))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to sweep random pairs: %w", err)
	}

	total := newRangeAcc(len(opts.Metrics))
	for _, a := range Anchors() {
		total.measure(opts.Metrics, a[0], a[1])
	}
	for _, p := range parts {
		total.merge(p)
	}

	report := &RangeReport{
		Pairs:       int64(opts.Pairs + len(Anchors())),
		MaxDeltaE76: total.maxE76,
		MaxDeltaE00: total.maxE00,
	}
	for i, m := range opts.Metrics {
		report.Summaries = append(report.Summaries, total.perMetric[i].summary(m.String()))
	}
	return report, nil
}

func randomColor(rng *rand.Rand) colors.RGBDisplay {
	return colors.MustRGBDisplay(rng.Float64(), rng.Float64(), rng.Float64())
}
