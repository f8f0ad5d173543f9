package cards

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"colordist/internal/colors"
)

// ErrNotFound is returned by Find when no pair within tolerance turns up.
var ErrNotFound = errors.New("no pair found")

// SearchOptions configures Find.
type SearchOptions struct {
	Metric    colors.Metric
	Target    float64
	Tolerance float64
	MaxIter   int
}

// Found is a pair whose distance lies within tolerance of the target.
type Found struct {
	Pair     Pair
	Distance float64
	Tries    int
}

// Validate checks the target and tolerance are usable distances.
func (o SearchOptions) Validate() error {
	if math.IsNaN(o.Target) || o.Target < 0 || o.Target > 1 {
		return fmt.Errorf("target distance %g not in [0, 1]", o.Target)
	}
	if math.IsNaN(o.Tolerance) || o.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", o.Tolerance)
	}
	if o.MaxIter <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", o.MaxIter)
	}
	return nil
}

// Find draws uniformly random 8-bit display pairs from rng until one lies
// within Tolerance of Target under Metric.
func Find(ctx context.Context, opts SearchOptions, rng *rand.Rand) (Found, error) {
	if err := opts.Validate(); err != nil {
		return Found{}, fmt.Errorf("invalid search options: %w", err)
	}
	for i := 1; i <= opts.MaxIter; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return Found{}, err
			}
		}
		p := Pair{A: randomColor(rng), B: randomColor(rng)}
		d := p.Distance(opts.Metric)
		if math.Abs(d-opts.Target) <= opts.Tolerance {
			return Found{Pair: p, Distance: d, Tries: i}, nil
		}
	}
	return Found{}, fmt.Errorf("%w for %s at %.4f±%.4f after %d tries", ErrNotFound, opts.Metric, opts.Target, opts.Tolerance, opts.MaxIter)
}

func randomColor(rng *rand.Rand) colors.RGBDisplay {
	c, err := colors.RGBDisplayFromEightBit(rng.Intn(256), rng.Intn(256), rng.Intn(256))
	if err != nil {
		panic(err)
	}
	return c
}
