package analysis

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrTooFewSamples is returned when trimming leaves fewer than two values.
	ErrTooFewSamples = errors.New("not enough data for trimmed statistics")
	// ErrUndefined is returned by a correlation whose input has no variance.
	ErrUndefined = errors.New("correlation undefined")
)

func popMeanStdDev(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(xs, nil)
}

func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// PairStats summarizes the normalized scores one pair received.
type PairStats struct {
	N             int     `yaml:"n" json:"n"`
	Mean          float64 `yaml:"mean" json:"mean"`
	StdDev        float64 `yaml:"stddev" json:"stddev"`
	TrimmedN      int     `yaml:"trimmed_n" json:"trimmed_n"`
	TrimmedMean   float64 `yaml:"trimmed_mean" json:"trimmed_mean"`
	TrimmedStdDev float64 `yaml:"trimmed_stddev" json:"trimmed_stddev"`
}

// Describe computes population statistics over xs and over xs with
// floor(n·trim) values dropped from each end.
func Describe(xs []float64, trim float64) (PairStats, error) {
	n := len(xs)
	st := PairStats{N: n}
	st.Mean, st.StdDev = popMeanStdDev(xs)

	k := int(math.Floor(float64(n)*trim + 1e-9))
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	kept := sorted[k : n-k]
	if len(kept) < 2 {
		return st, fmt.Errorf("%w: %d of %d values left", ErrTooFewSamples, len(kept), n)
	}
	st.TrimmedN = len(kept)
	st.TrimmedMean, st.TrimmedStdDev = popMeanStdDev(kept)
	return st, nil
}

// Pearson is the sample correlation coefficient of x and y.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("length mismatch: %d and %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("%w: need at least two points, got %d", ErrUndefined, len(x))
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0, fmt.Errorf("%w: constant input", ErrUndefined)
	}
	r := stat.Correlation(x, y, nil)
	return math.Max(-1, math.Min(1, r)), nil
}

// PValue is the two-sided p-value of a correlation r over n points under
// the null hypothesis of no correlation, from Student's t with n-2 degrees
// of freedom. It is NaN when n < 3.
func PValue(r float64, n int) float64 {
	if n < 3 {
		return math.NaN()
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return math.Min(1, 2*dist.Survival(math.Abs(t)))
}

// Spearman is the Pearson correlation of the ranks of x and y, with tied
// values sharing their average rank.
func Spearman(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("length mismatch: %d and %d", len(x), len(y))
	}
	return Pearson(ranks(x), ranks(y))
}

// ranks returns 1-based ranks; ties get the mean of the ranks they span.
func ranks(xs []float64) []float64 {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	out := make([]float64, len(xs))
	for i := 0; i < len(idx); {
		j := i + 1
		for j < len(idx) && xs[idx[j]] == xs[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2
		for _, k := range idx[i:j] {
			out[k] = avg
		}
		i = j
	}
	return out
}
