// Package analysis screens collected ratings and correlates the surviving
// human judgements with every distance metric.
package analysis

import (
	"errors"
	"fmt"
	"sort"

	"colordist/internal/cards"
	"colordist/internal/ratings"
)

// PairResult is one rated pair with its human and computed distances.
type PairResult struct {
	Pair      string             `yaml:"pair" json:"pair"`
	Stats     PairStats          `yaml:"stats" json:"stats"`
	Human     float64            `yaml:"human" json:"human"`
	Distances map[string]float64 `yaml:"distances" json:"distances"`
}

// SkippedPair is a pair left out because too few scores survived trimming.
type SkippedPair struct {
	Pair   string `yaml:"pair" json:"pair"`
	Scores int    `yaml:"scores" json:"scores"`
	Error  string `yaml:"error" json:"error"`
}

// Correlation compares one metric with the human distances. The P fields
// are two-sided p-values.
type Correlation struct {
	Metric    string  `yaml:"metric" json:"metric"`
	N         int     `yaml:"n" json:"n"`
	Pearson   float64 `yaml:"pearson" json:"pearson"`
	PearsonP  float64 `yaml:"pearson_p" json:"pearson_p"`
	Spearman  float64 `yaml:"spearman" json:"spearman"`
	SpearmanP float64 `yaml:"spearman_p" json:"spearman_p"`
	Error     string  `yaml:"error,omitempty" json:"error,omitempty"`
}

// Report is the outcome of Analyze.
type Report struct {
	Ratings        int           `yaml:"ratings" json:"ratings"`
	BadLines       int           `yaml:"bad_lines" json:"bad_lines"`
	Names          int           `yaml:"names" json:"names"`
	Sessions       int           `yaml:"sessions" json:"sessions"`
	LongestSession int           `yaml:"longest_session" json:"longest_session"`
	Trusted        int           `yaml:"trusted_sessions" json:"trusted_sessions"`
	Rejected       []Rejection   `yaml:"rejected" json:"rejected"`
	Notes          []Note        `yaml:"notes" json:"notes"`
	ValidScores    int           `yaml:"valid_scores" json:"valid_scores"`
	Pairs          []PairResult  `yaml:"pairs" json:"pairs"`
	Skipped        []SkippedPair `yaml:"skipped_pairs,omitempty" json:"skipped_pairs,omitempty"`
	Correlations   []Correlation `yaml:"correlations" json:"correlations"`
}

// Analyze runs the full pipeline: grouping, screening, per-pair statistics
// and per-metric correlation. cfg must have been validated.
func Analyze(rs []ratings.Rating, cfg *Config) (*Report, error) {
	if cfg == nil {
		cfg = DefaultConfig()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if len(cfg.metrics) == 0 {
		return nil, errors.New("config not validated: no resolved metrics")
	}

	sessions := GroupSessions(rs)
	report := &Report{Ratings: len(rs), Sessions: len(sessions)}

	names := make(map[string]struct{})
	for _, s := range sessions {
		names[s.Key.Name] = struct{}{}
		report.LongestSession = max(report.LongestSession, len(s.Records))
	}
	report.Names = len(names)

	var screened []*Session
	for _, s := range sessions {
		if rej := cfg.screen(s); rej != nil {
			report.Rejected = append(report.Rejected, *rej)
			continue
		}
		screened = append(screened, s)
	}

	known := cards.PredefinedSet()
	var trusted []*Session
	for _, s := range screened {
		report.Notes = append(report.Notes, cfg.inspect(s, known)...)
		if rej := cfg.consistency(s); rej != nil {
			report.Rejected = append(report.Rejected, *rej)
			continue
		}
		trusted = append(trusted, s)
	}
	report.Trusted = len(trusted)

	byPair := make(map[string][]float64)
	pairs := make(map[string]cards.Pair)
	for _, s := range trusted {
		for _, r := range s.Records {
			k := r.Pair.Key()
			byPair[k] = append(byPair[k], HumanDistance(r.Score))
			pairs[k] = r.Pair
			report.ValidScores++
		}
	}

	keys := make([]string, 0, len(byPair))
	for k := range byPair {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	metrics := cfg.ResolvedMetrics()
	for _, k := range keys {
		p := pairs[k]
		st, err := Describe(byPair[k], cfg.TrimFraction)
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedPair{Pair: p.String(), Scores: len(byPair[k]), Error: err.Error()})
			continue
		}
		res := PairResult{Pair: p.String(), Stats: st, Human: st.TrimmedMean, Distances: make(map[string]float64, len(metrics))}
		for _, m := range metrics {
			res.Distances[m.String()] = p.Distance(m)
		}
		report.Pairs = append(report.Pairs, res)
	}

	human := make([]float64, len(report.Pairs))
	for i, pr := range report.Pairs {
		human[i] = pr.Human
	}
	for _, m := range metrics {
		name := m.String()
		computed := make([]float64, len(report.Pairs))
		for i, pr := range report.Pairs {
			computed[i] = pr.Distances[name]
		}
		report.Correlations = append(report.Correlations, correlate(name, computed, human))
	}
	return report, nil
}

// HumanDistance maps a similarity score (100 = identical) onto [0, 1].
func HumanDistance(score int) float64 {
	return float64(100-score) / 100
}

func correlate(name string, x, y []float64) Correlation {
	c := Correlation{Metric: name, N: len(x)}
	if c.N < 3 {
		c.Error = fmt.Sprintf("need at least three pairs, got %d", c.N)
		return c
	}
	var err error
	if c.Pearson, err = Pearson(x, y); err != nil {
		c.Error = fmt.Sprintf("pearson: %v", err)
		return c
	}
	c.PearsonP = PValue(c.Pearson, c.N)
	if c.Spearman, err = Spearman(x, y); err != nil {
		c.Error = fmt.Sprintf("spearman: %v", err)
		return c
	}
	c.SpearmanP = PValue(c.Spearman, c.N)
	return c
}
