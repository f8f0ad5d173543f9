package ratings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"colordist/internal/colors"
)

// ErrBadRequest is wrapped by every Submission validation failure.
var ErrBadRequest = errors.New("bad request")

// Rating is one human judgement of how similar two colors look. Score 100
// means "identical" and 0 means "completely different".
type Rating struct {
	IP     string
	Time   time.Time
	Name   string
	ColorA colors.RGBDisplay
	ColorB colors.RGBDisplay
	Score  int
}

// Submission is the JSON body accepted by the rating service.
type Submission struct {
	Name   string      `json:"name"`
	ColorA string      `json:"colorA"`
	ColorB string      `json:"colorB"`
	Score  json.Number `json:"score"`
}

// NormalizeName trims the name, collapses every run of whitespace to one
// space and applies Unicode NFC so that visually equal names compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// Rating validates the submission and builds a Rating for the given client.
func (s Submission) Rating(ip string, at time.Time) (Rating, error) {
	name := NormalizeName(s.Name)
	if name == "" {
		return Rating{}, fmt.Errorf("%w: missing name", ErrBadRequest)
	}
	a, err := colors.ParseRGBDisplay(strings.TrimSpace(s.ColorA))
	if err != nil {
		return Rating{}, fmt.Errorf("%w: colorA: %v", ErrBadRequest, err)
	}
	b, err := colors.ParseRGBDisplay(strings.TrimSpace(s.ColorB))
	if err != nil {
		return Rating{}, fmt.Errorf("%w: colorB: %v", ErrBadRequest, err)
	}
	score, err := parseScore(s.Score.String())
	if err != nil {
		return Rating{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return Rating{
		IP:     ip,
		Time:   at.Truncate(time.Second),
		Name:   name,
		ColorA: a,
		ColorB: b,
		Score:  score,
	}, nil
}

// parseScore accepts an integer in 0..100. Fractional inputs are truncated.
func parseScore(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing score")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("invalid score %q", s)
		}
		n = int(math.Trunc(f))
	}
	if n < 0 || n > 100 {
		return 0, fmt.Errorf("score %d not in [0, 100]", n)
	}
	return n, nil
}

// LogEntry is the JSON line written for each accepted rating.
type LogEntry struct {
	IP    string `json:"ip"`
	TS    int64  `json:"ts"`
	Name  string `json:"name"`
	A     string `json:"A"`
	B     string `json:"B"`
	Score int    `json:"score"`
}

func (r Rating) LogEntry() LogEntry {
	return LogEntry{
		IP:    r.IP,
		TS:    r.Time.Unix(),
		Name:  r.Name,
		A:     r.ColorA.Hex(),
		B:     r.ColorB.Hex(),
		Score: r.Score,
	}
}
