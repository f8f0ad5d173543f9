package analysis

import (
	"fmt"
	"math"
	"slices"
)

// Reason names the rule that rejected a session.
type Reason string

const (
	ReasonBlacklisted     Reason = "blacklisted"
	ReasonTooShort        Reason = "too_short"
	ReasonIdenticalScores Reason = "identical_scores"
	ReasonLowStdDev       Reason = "low_stddev"
	ReasonShortDuration   Reason = "short_duration"
	ReasonHighRate        Reason = "high_rate"
	ReasonTooManyNeutral  Reason = "too_many_neutral"
	ReasonInconsistent    Reason = "inconsistent_pairs"
)

// Rejection records why a session was left out.
type Rejection struct {
	Session SessionKey `yaml:"session" json:"session"`
	Ratings int        `yaml:"ratings" json:"ratings"`
	Reason  Reason     `yaml:"reason" json:"reason"`
	Detail  string     `yaml:"detail,omitempty" json:"detail,omitempty"`
}

func (r Rejection) String() string {
	if r.Detail == "" {
		return fmt.Sprintf("session %s rejected (%s)", r.Session, r.Reason)
	}
	return fmt.Sprintf("session %s rejected (%s): %s", r.Session, r.Reason, r.Detail)
}

// screen applies the per-session rules that look at the session as a
// whole. Rules run in a fixed order and the first failing rule wins.
func (c *Config) screen(s *Session) *Rejection {
	reject := func(reason Reason, format string, args ...any) *Rejection {
		return &Rejection{Session: s.Key, Ratings: len(s.Records), Reason: reason, Detail: fmt.Sprintf(format, args...)}
	}

	n := len(s.Records)
	if c.blacklisted(s.Key) {
		return reject(ReasonBlacklisted, "")
	}
	if n < c.MinSessionLength {
		return reject(ReasonTooShort, "%d ratings, need %d", n, c.MinSessionLength)
	}

	scores := s.scores()
	if slices.Min(scores) == slices.Max(scores) {
		return reject(ReasonIdenticalScores, "every score is %g", scores[0])
	}
	if sd := sampleStdDev(scores); sd < c.MinScoreStdDev {
		return reject(ReasonLowStdDev, "score stddev %.2f", sd)
	}

	dur := s.duration()
	if dur < c.MinDurationSeconds {
		return reject(ReasonShortDuration, "%d sec for %d ratings", dur, n)
	}
	rate := math.Inf(1)
	if dur > 0 {
		rate = float64(n) / float64(dur)
	}
	if rate > c.MaxRatePerSecond {
		return reject(ReasonHighRate, "%.2f ratings/sec over %d sec", rate, dur)
	}

	neutral := 0
	for _, r := range s.Records {
		if r.Score == c.NeutralScore {
			neutral++
		}
	}
	if float64(neutral) > float64(n)*c.MaxNeutralFraction {
		return reject(ReasonTooManyNeutral, "%d of %d scores are %d", neutral, n, c.NeutralScore)
	}
	return nil
}

// consistency rejects a session that rated too many repeated pairs far
// apart.
func (c *Config) consistency(s *Session) *Rejection {
	bad := 0
	for _, scores := range s.pairScores() {
		if slices.Max(scores)-slices.Min(scores) >= c.InconsistentSpread {
			bad++
		}
	}
	if bad > c.MaxInconsistentPairs {
		return &Rejection{
			Session: s.Key,
			Ratings: len(s.Records),
			Reason:  ReasonInconsistent,
			Detail:  fmt.Sprintf("%d pairs with score spread >= %d", bad, c.InconsistentSpread),
		}
	}
	return nil
}
