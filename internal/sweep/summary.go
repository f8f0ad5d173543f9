// Package sweep runs bulk jobs over many colors in parallel: distance range
// studies and conversion round-trip checks.
package sweep

import (
	"math"
)

// Summary describes the distribution of one metric's distances.
type Summary struct {
	Metric         string  `json:"metric" yaml:"metric"`
	Count          int64   `json:"count" yaml:"count"`
	Min            float64 `json:"min" yaml:"min"`
	Max            float64 `json:"max" yaml:"max"`
	Mean           float64 `json:"mean" yaml:"mean"`
	StdDev         float64 `json:"stddev" yaml:"stddev"`
	ExcessKurtosis float64 `json:"excess_kurtosis" yaml:"excess_kurtosis"`
}

// accumulator keeps power sums so partial results from workers can be
// merged by addition.
type accumulator struct {
	n              int64
	min, max       float64
	s1, s2, s3, s4 float64
}

func newAccumulator() accumulator {
	return accumulator{min: math.Inf(1), max: math.Inf(-1)}
}

func (a *accumulator) add(x float64) {
	a.n++
	a.min = math.Min(a.min, x)
	a.max = math.Max(a.max, x)
	x2 := x * x
	a.s1 += x
	a.s2 += x2
	a.s3 += x2 * x
	a.s4 += x2 * x2
}

func (a *accumulator) merge(o accumulator) {
	a.n += o.n
	a.min = math.Min(a.min, o.min)
	a.max = math.Max(a.max, o.max)
	a.s1 += o.s1
	a.s2 += o.s2
	a.s3 += o.s3
	a.s4 += o.s4
}

// summary reports population moments; kurtosis is 0 for constant input.
func (a accumulator) summary(metric string) Summary {
	s := Summary{Metric: metric, Count: a.n}
	if a.n == 0 {
		return s
	}
	n := float64(a.n)
	m := a.s1 / n
	e2, e3, e4 := a.s2/n, a.s3/n, a.s4/n
	m2 := math.Max(0, e2-m*m)
	m4 := e4 - 4*m*e3 + 6*m*m*e2 - 3*m*m*m*m
	s.Min, s.Max, s.Mean = a.min, a.max, m
	s.StdDev = math.Sqrt(m2)
	if m2 > 1e-15 {
		s.ExcessKurtosis = m4/(m2*m2) - 3
	}
	return s
}
