package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"colordist/internal/cards"
	"colordist/internal/colors"
)

// Config holds the thresholds used to decide which sessions are trusted and
// how pair scores are aggregated.
type Config struct {
	MinSessionLength     int          `yaml:"min_session_length" json:"min_session_length"`
	MinScoreStdDev       float64      `yaml:"min_score_stddev" json:"min_score_stddev"`
	MinDurationSeconds   int64        `yaml:"min_duration_seconds" json:"min_duration_seconds"`
	MaxRatePerSecond     float64      `yaml:"max_rate_per_second" json:"max_rate_per_second"`
	NeutralScore         int          `yaml:"neutral_score" json:"neutral_score"`
	MaxNeutralFraction   float64      `yaml:"max_neutral_fraction" json:"max_neutral_fraction"`
	InconsistentSpread   int          `yaml:"inconsistent_spread" json:"inconsistent_spread"`
	MaxInconsistentPairs int          `yaml:"max_inconsistent_pairs" json:"max_inconsistent_pairs"`
	IdenticalMinScore    int          `yaml:"identical_min_score" json:"identical_min_score"`
	TrimFraction         float64      `yaml:"trim_fraction" json:"trim_fraction"`
	Blacklist            []SessionKey `yaml:"blacklist" json:"blacklist"`
	ClosePairs           [][]string   `yaml:"close_pairs" json:"close_pairs"`
	Metrics              []string     `yaml:"metrics" json:"metrics"`

	metrics    []colors.Metric
	closePairs cards.Set
	blacklist  map[SessionKey]bool
}

// DefaultConfig returns the thresholds used for the published study.
func DefaultConfig() *Config {
	return &Config{
		MinSessionLength:     15,
		MinScoreStdDev:       10,
		MinDurationSeconds:   10,
		MaxRatePerSecond:     0.5,
		NeutralScore:         50,
		MaxNeutralFraction:   0.5,
		InconsistentSpread:   50,
		MaxInconsistentPairs: 1,
		IdenticalMinScore:    75,
		TrimFraction:         0.1,
		ClosePairs: [][]string{
			{"#787878", "#828282"},
			{"#DF00FF", "#FF00FF"},
			{"#F0F0E6", "#FAFAF0"},
		},
		Metrics: []string{"rgbd", "rgbl", "yiq", "hsv", "hsv:linear", "hls", "hls:linear", "lab76", "lab2k"},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig, so a file only needs
// the keys it changes.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate checks the thresholds and resolves metric names and close pairs.
func (c *Config) Validate() error {
	if c.MinSessionLength < 1 {
		return fmt.Errorf("min_session_length must be at least 1, got %d", c.MinSessionLength)
	}
	if c.MinScoreStdDev < 0 || c.MinDurationSeconds < 0 || c.MaxRatePerSecond <= 0 {
		return fmt.Errorf("min_score_stddev and min_duration_seconds must be non-negative and max_rate_per_second positive")
	}
	if c.MaxNeutralFraction < 0 || c.MaxNeutralFraction > 1 {
		return fmt.Errorf("max_neutral_fraction %g not in [0, 1]", c.MaxNeutralFraction)
	}
	if c.TrimFraction < 0 || c.TrimFraction >= 0.5 {
		return fmt.Errorf("trim_fraction %g not in [0, 0.5)", c.TrimFraction)
	}
	if c.MaxInconsistentPairs < 0 {
		return fmt.Errorf("max_inconsistent_pairs must be non-negative, got %d", c.MaxInconsistentPairs)
	}
	if len(c.Metrics) == 0 {
		return fmt.Errorf("at least one metric must be listed")
	}

	c.metrics = c.metrics[:0]
	for _, name := range c.Metrics {
		m, err := colors.ParseMetric(name)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		c.metrics = append(c.metrics, m)
	}

	pairs := make([]cards.Pair, 0, len(c.ClosePairs))
	for i, cp := range c.ClosePairs {
		if len(cp) != 2 {
			return fmt.Errorf("close_pairs[%d]: expected two colors, got %d", i, len(cp))
		}
		p, err := cards.ParsePair(cp[0], cp[1])
		if err != nil {
			return fmt.Errorf("close_pairs[%d]: %w", i, err)
		}
		pairs = append(pairs, p)
	}
	c.closePairs = cards.NewSet(pairs)

	c.blacklist = make(map[SessionKey]bool, len(c.Blacklist))
	for i, k := range c.Blacklist {
		if k.Name == "" && k.IP == "" {
			return fmt.Errorf("blacklist[%d]: name or ip is required", i)
		}
		c.blacklist[k] = true
	}
	return nil
}

// ResolvedMetrics returns the parsed metric list; Validate must have run.
func (c *Config) ResolvedMetrics() []colors.Metric {
	return append([]colors.Metric(nil), c.metrics...)
}

// blacklisted matches a session exactly, or by name or ip alone when the
// entry leaves the other field empty.
func (c *Config) blacklisted(k SessionKey) bool {
	return c.blacklist[k] || c.blacklist[SessionKey{Name: k.Name}] || c.blacklist[SessionKey{IP: k.IP}]
}
