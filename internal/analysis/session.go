package analysis

import (
	"fmt"

	"colordist/internal/cards"
	"colordist/internal/ratings"
)

// SessionKey identifies one participant at one address.
type SessionKey struct {
	Name string `yaml:"name" json:"name"`
	IP   string `yaml:"ip" json:"ip"`
}

func (k SessionKey) String() string {
	return fmt.Sprintf("(%s, %s)", k.Name, k.IP)
}

// Record is one rating inside a session, with its pair in canonical order.
type Record struct {
	Unix  int64
	Pair  cards.Pair
	Score int
}

// Session is every rating sharing a SessionKey, in log order.
type Session struct {
	Key     SessionKey
	Records []Record
}

// GroupSessions splits ratings into sessions, keeping the order in which
// sessions first appear.
func GroupSessions(rs []ratings.Rating) []*Session {
	index := make(map[SessionKey]*Session)
	var sessions []*Session
	for _, r := range rs {
		key := SessionKey{Name: r.Name, IP: r.IP}
		s, ok := index[key]
		if !ok {
			s = &Session{Key: key}
			index[key] = s
			sessions = append(sessions, s)
		}
		s.Records = append(s.Records, Record{
			Unix:  r.Time.Unix(),
			Pair:  cards.NewPair(r.ColorA, r.ColorB),
			Score: r.Score,
		})
	}
	return sessions
}

func (s *Session) scores() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = float64(r.Score)
	}
	return out
}

// duration is the span between the first and last rating in whole seconds.
func (s *Session) duration() int64 {
	if len(s.Records) == 0 {
		return 0
	}
	lo, hi := s.Records[0].Unix, s.Records[0].Unix
	for _, r := range s.Records[1:] {
		lo = min(lo, r.Unix)
		hi = max(hi, r.Unix)
	}
	return hi - lo
}

// pairScores groups the session's scores by pair key.
func (s *Session) pairScores() map[string][]int {
	out := make(map[string][]int)
	for _, r := range s.Records {
		k := r.Pair.Key()
		out[k] = append(out[k], r.Score)
	}
	return out
}
