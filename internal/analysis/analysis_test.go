package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"colordist/internal/cards"
	"colordist/internal/colors"
	"colordist/internal/ratings"
)

const epoch = 1_700_000_000

func mustConfig(t *testing.T, edit func(*Config)) *Config {
	t.Helper()
	cfg := DefaultConfig()
	if edit != nil {
		edit(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	return cfg
}

func rating(name, ip string, sec int64, a, b string, score int) ratings.Rating {
	return ratings.Rating{
		IP:     ip,
		Time:   time.Unix(epoch+sec, 0),
		Name:   name,
		ColorA: colors.MustParseRGBDisplay(a),
		ColorB: colors.MustParseRGBDisplay(b),
		Score:  score,
	}
}

// session builds records five seconds apart with the given scores.
func session(key SessionKey, scores ...int) *Session {
	s := &Session{Key: key}
	p := cards.Predefined()[5]
	for i, sc := range scores {
		s.Records = append(s.Records, Record{Unix: epoch + int64(i)*5, Pair: p, Score: sc})
	}
	return s
}

func repeat(score, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = score
	}
	return out
}

func ramp(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = (i * 5) % 101
	}
	return out
}

func TestGroupSessions(t *testing.T) {
	rs := []ratings.Rating{
		rating("ann", "10.0.0.1", 0, "#FFFFFF", "#000000", 0),
		rating("bob", "10.0.0.2", 1, "#FF0000", "#00FFFF", 10),
		rating("ann", "10.0.0.1", 2, "#000000", "#FFFFFF", 5),
		rating("ann", "10.0.0.9", 3, "#000000", "#FFFFFF", 5),
	}
	sessions := GroupSessions(rs)

	var keys []SessionKey
	for _, s := range sessions {
		keys = append(keys, s.Key)
	}
	expected := []SessionKey{{"ann", "10.0.0.1"}, {"bob", "10.0.0.2"}, {"ann", "10.0.0.9"}}
	if diff := cmp.Diff(expected, keys); diff != "" {
		t.Errorf("session keys mismatch (-want +got):\n%s", diff)
	}

	ann := sessions[0]
	if len(ann.Records) != 2 {
		t.Fatalf("ann has %d records, expected 2", len(ann.Records))
	}
	if ann.Records[0].Pair.Key() != ann.Records[1].Pair.Key() {
		t.Errorf("swapped sides produced different pairs: %s vs %s", ann.Records[0].Pair, ann.Records[1].Pair)
	}
	if got := ann.Records[0].Pair.String(); got != "#000000 #FFFFFF" {
		t.Errorf("pair = %q, expected canonical %q", got, "#000000 #FFFFFF")
	}
	if got := ann.duration(); got != 2 {
		t.Errorf("duration() = %d, expected 2", got)
	}
}

func TestScreen(t *testing.T) {
	key := SessionKey{Name: "ann", IP: "10.0.0.1"}
	cfg := mustConfig(t, func(c *Config) {
		c.Blacklist = []SessionKey{{Name: "eve"}, {Name: "mallory", IP: "10.6.6.6"}}
	})

	fast := session(key, ramp(20)...)
	for i := range fast.Records {
		fast.Records[i].Unix = epoch + int64(i)
	}
	burst := session(key, ramp(20)...)
	for i := range burst.Records {
		burst.Records[i].Unix = epoch + int64(i%3)
	}
	neutral := session(key, append(repeat(50, 11), 0, 100, 0, 100, 0, 100, 0, 100, 0)...)

	tests := []struct {
		name     string
		session  *Session
		expected Reason
	}{
		{"trusted", session(key, ramp(20)...), ""},
		{"blacklisted by name", session(SessionKey{Name: "eve", IP: "1.2.3.4"}, ramp(20)...), ReasonBlacklisted},
		{"blacklisted exact", session(SessionKey{Name: "mallory", IP: "10.6.6.6"}, ramp(20)...), ReasonBlacklisted},
		{"same name other ip", session(SessionKey{Name: "mallory", IP: "10.0.0.7"}, ramp(20)...), ""},
		{"too short", session(key, ramp(14)...), ReasonTooShort},
		{"identical scores", session(key, repeat(70, 20)...), ReasonIdenticalScores},
		{"low stddev", session(key, append(repeat(70, 10), repeat(75, 10)...)...), ReasonLowStdDev},
		{"short duration", burst, ReasonShortDuration},
		{"high rate", fast, ReasonHighRate},
		{"too many neutral", neutral, ReasonTooManyNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rej := cfg.screen(tt.session)
			var got Reason
			if rej != nil {
				got = rej.Reason
			}
			if got != tt.expected {
				t.Errorf("screen() = %q (%v), expected %q", got, rej, tt.expected)
			}
		})
	}
}

func TestConsistency(t *testing.T) {
	cfg := mustConfig(t, nil)
	p := cards.Predefined()
	build := func(scores map[int][]int) *Session {
		s := &Session{Key: SessionKey{Name: "ann"}}
		for idx, list := range scores {
			for _, sc := range list {
				s.Records = append(s.Records, Record{Pair: p[idx], Score: sc})
			}
		}
		return s
	}

	if rej := cfg.consistency(build(map[int][]int{4: {0, 60}, 5: {10, 20}})); rej != nil {
		t.Errorf("one inconsistent pair rejected: %v", rej)
	}
	rej := cfg.consistency(build(map[int][]int{4: {0, 60}, 5: {10, 90}}))
	if rej == nil || rej.Reason != ReasonInconsistent {
		t.Errorf("two inconsistent pairs: got %v, expected %s", rej, ReasonInconsistent)
	}
}

func TestInspect(t *testing.T) {
	cfg := mustConfig(t, nil)
	key := SessionKey{Name: "ann", IP: "10.0.0.1"}
	s := &Session{Key: key}
	for _, r := range []struct {
		a, b  string
		score int
	}{
		{"#FFD700", "#FFD700", 50},  // identical, low
		{"#FFD700", "#FFD700", 90},  // identical, fine
		{"#000000", "#FFFFFF", 100}, // different, full
		{"#828282", "#787878", 100}, // close pair
		{"#010203", "#040506", 40},  // unknown
	} {
		pair, err := cards.ParsePair(r.a, r.b)
		if err != nil {
			t.Fatal(err)
		}
		s.Records = append(s.Records, Record{Pair: pair, Score: r.score})
	}

	var got []NoteKind
	for _, n := range cfg.inspect(s, cards.PredefinedSet()) {
		got = append(got, n.Kind)
	}
	expected := []NoteKind{NoteIdenticalLowScore, NoteDifferentFullScore, NoteUnknownPair}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribe(t *testing.T) {
	xs := []float64{0.9, 0.1, 0.5, 0.3, 0.7, 0, 0.2, 0.4, 0.6, 0.8}
	st, err := Describe(xs, 0.1)
	if err != nil {
		t.Fatalf("Describe error: %v", err)
	}
	if st.N != 10 || st.TrimmedN != 8 {
		t.Errorf("N = %d, TrimmedN = %d, expected 10 and 8", st.N, st.TrimmedN)
	}
	checks := []struct {
		name     string
		got, exp float64
	}{
		{"mean", st.Mean, 0.45},
		{"stddev", st.StdDev, 0.28722813232690143},
		{"trimmed mean", st.TrimmedMean, 0.45},
		{"trimmed stddev", st.TrimmedStdDev, 0.22912878474779197},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.exp) > 1e-12 {
			t.Errorf("%s = %v, expected %v", c.name, c.got, c.exp)
		}
	}

	if _, err := Describe([]float64{0.5}, 0.1); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("Describe(single) error = %v, expected ErrTooFewSamples", err)
	}
	if _, err := Describe([]float64{0.1, 0.2, 0.3, 0.4}, 0.4); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("Describe(heavy trim) error = %v, expected ErrTooFewSamples", err)
	}
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	tests := []struct {
		name     string
		y        []float64
		pearson  float64
		spearman float64
	}{
		{"linear", []float64{2, 4, 6, 8, 10}, 1, 1},
		{"reversed", []float64{5, 4, 3, 2, 1}, -1, -1},
		{"monotone", []float64{1, 8, 27, 64, 125}, 0.9431175138077005, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Pearson(x, tt.y)
			if err != nil {
				t.Fatalf("Pearson error: %v", err)
			}
			if math.Abs(r-tt.pearson) > 1e-9 {
				t.Errorf("Pearson = %v, expected %v", r, tt.pearson)
			}
			rho, err := Spearman(x, tt.y)
			if err != nil {
				t.Fatalf("Spearman error: %v", err)
			}
			if math.Abs(rho-tt.spearman) > 1e-9 {
				t.Errorf("Spearman = %v, expected %v", rho, tt.spearman)
			}
		})
	}

	if _, err := Pearson(x, []float64{3, 3, 3, 3, 3}); !errors.Is(err, ErrUndefined) {
		t.Errorf("Pearson(constant) error = %v, expected ErrUndefined", err)
	}
	if _, err := Pearson(x, x[:3]); err == nil {
		t.Error("Pearson with length mismatch: expected error")
	}
}

func TestPValue(t *testing.T) {
	tests := []struct {
		name string
		r    float64
		n    int
		want float64
	}{
		// t distribution with 1 degree of freedom: p = 1 - 2/π·atan(|t|).
		{"cauchy", 0.5, 3, 2.0 / 3},
		{"cauchy negative", -0.5, 3, 2.0 / 3},
		// y = x³ over x = 1..5.
		{"cubic", 0.9431175138077005, 5, 0.01614585528863033},
		{"no correlation", 0, 10, 1},
		{"perfect", 1, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PValue(tt.r, tt.n); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("PValue(%v, %d) = %v, expected %v", tt.r, tt.n, got, tt.want)
			}
		})
	}
	if got := PValue(0.5, 2); !math.IsNaN(got) {
		t.Errorf("PValue(0.5, 2) = %v, expected NaN", got)
	}
}

func TestRanks(t *testing.T) {
	got := ranks([]float64{10, 30, 20, 20, 5})
	expected := []float64{2, 5, 3.5, 3.5, 1}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("ranks mismatch (-want +got):\n%s", diff)
	}
}

func TestHumanDistance(t *testing.T) {
	for score, exp := range map[int]float64{100: 0, 0: 1, 75: 0.25} {
		if got := HumanDistance(score); got != exp {
			t.Errorf("HumanDistance(%d) = %v, expected %v", score, got, exp)
		}
	}
}

// study produces three trusted sessions whose scores follow RGB distance
// plus one session that always answers 50.
func study() []ratings.Rating {
	rgbd := colors.Metric{Model: colors.ModelRGBDisplay}
	pairs := cards.Predefined()[:20]
	var rs []ratings.Rating
	for s, offset := range []int{0, 2, -2} {
		ip := "10.0.0." + string(rune('1'+s))
		for i, p := range pairs {
			score := int(math.Round(100*(1-p.Distance(rgbd)))) + offset
			score = max(0, min(100, score))
			rs = append(rs, rating("p"+ip, ip, int64(i)*5, p.A.Hex(), p.B.Hex(), score))
		}
	}
	for i, p := range pairs {
		rs = append(rs, rating("lazy", "10.0.0.9", int64(i)*5, p.A.Hex(), p.B.Hex(), 50))
	}
	return rs
}

func TestAnalyze(t *testing.T) {
	report, err := Analyze(study(), mustConfig(t, nil))
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if report.Ratings != 80 || report.Sessions != 4 || report.Trusted != 3 {
		t.Errorf("Ratings/Sessions/Trusted = %d/%d/%d, expected 80/4/3", report.Ratings, report.Sessions, report.Trusted)
	}
	if len(report.Rejected) != 1 || report.Rejected[0].Reason != ReasonIdenticalScores {
		t.Errorf("Rejected = %v, expected one %s", report.Rejected, ReasonIdenticalScores)
	}
	if report.ValidScores != 60 {
		t.Errorf("ValidScores = %d, expected 60", report.ValidScores)
	}
	if len(report.Pairs) != 20 || len(report.Skipped) != 0 {
		t.Errorf("Pairs = %d, Skipped = %d, expected 20 and 0", len(report.Pairs), len(report.Skipped))
	}
	if len(report.Correlations) != len(DefaultConfig().Metrics) {
		t.Fatalf("Correlations = %d, expected one per metric", len(report.Correlations))
	}

	c := report.Correlations[0]
	if c.Metric != "rgbd" || c.N != 20 {
		t.Errorf("first correlation = %+v, expected rgbd over 20 pairs", c)
	}
	if c.Pearson < 0.99 || c.Spearman < 0.9 {
		t.Errorf("rgbd correlation r=%.3f ρ=%.3f, expected strong agreement", c.Pearson, c.Spearman)
	}
	if !(c.PearsonP >= 0 && c.PearsonP < 1e-6) || !(c.SpearmanP >= 0 && c.SpearmanP < 1e-3) {
		t.Errorf("rgbd p-values = %g, %g, expected both near 0", c.PearsonP, c.SpearmanP)
	}
	for _, pr := range report.Pairs {
		if len(pr.Distances) != len(DefaultConfig().Metrics) {
			t.Errorf("pair %s has %d distances", pr.Pair, len(pr.Distances))
		}
	}
}

func TestAnalyzeSkipsSparsePairs(t *testing.T) {
	cfg := mustConfig(t, func(c *Config) { c.MinSessionLength = 2 })
	rs := []ratings.Rating{
		rating("ann", "10.0.0.1", 0, "#000000", "#FFFFFF", 0),
		rating("ann", "10.0.0.1", 20, "#FF0000", "#00FFFF", 30),
		rating("ann", "10.0.0.1", 40, "#FF0000", "#00FFFF", 40),
	}
	report, err := Analyze(rs, cfg)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Pair != "#000000 #FFFFFF" {
		t.Errorf("Skipped = %+v, expected the single-score pair", report.Skipped)
	}
	if len(report.Pairs) != 1 {
		t.Errorf("Pairs = %d, expected 1", len(report.Pairs))
	}
	if c := report.Correlations[0]; c.Error == "" {
		t.Errorf("correlation over one pair should report an error, got %+v", c)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	cfg, err := LoadConfig(write("ok.yaml", `
min_session_length: 5
metrics: [lab2k, "hsv:linear"]
blacklist:
  - name: eve
    ip: 10.6.6.6
close_pairs:
  - ["#000000", "#010101"]
`))
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.MinSessionLength != 5 || cfg.MinScoreStdDev != 10 {
		t.Errorf("MinSessionLength = %d, MinScoreStdDev = %g, expected 5 and default 10", cfg.MinSessionLength, cfg.MinScoreStdDev)
	}
	var names []string
	for _, m := range cfg.ResolvedMetrics() {
		names = append(names, m.String())
	}
	if diff := cmp.Diff([]string{"lab2k", "hsv:linear"}, names); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}
	if !cfg.blacklisted(SessionKey{Name: "eve", IP: "10.6.6.6"}) {
		t.Error("configured blacklist entry not honoured")
	}

	errorCases := []struct {
		name, body, expected string
	}{
		{"bad trim", "trim_fraction: 0.6\n", "invalid config"},
		{"bad metric", "metrics: [cmyk]\n", "invalid config"},
		{"bad close pair", "close_pairs: [[\"#000000\"]]\n", "invalid config"},
		{"bad yaml", "min_session_length: [\n", "failed to parse config YAML"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(write(strings.ReplaceAll(tt.name, " ", "_")+".yaml", tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("LoadConfig error = %v, expected to contain %q", err, tt.expected)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("LoadConfig(missing) error = %v", err)
	}
}

func TestWrite(t *testing.T) {
	report, err := Analyze(study(), mustConfig(t, nil))
	if err != nil {
		t.Fatal(err)
	}

	var text bytes.Buffer
	if err := Write(&text, report, FormatText, true); err != nil {
		t.Fatalf("Write(text) error: %v", err)
	}
	for _, want := range []string{"Ratings read:        80", "Trusted sessions:    3", "Correlation with human distance:", "lab2k", "identical_scores"} {
		if !strings.Contains(text.String(), want) {
			t.Errorf("text report missing %q", want)
		}
	}

	var js bytes.Buffer
	if err := Write(&js, report, FormatJSON, false); err != nil {
		t.Fatalf("Write(json) error: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("json report does not decode: %v", err)
	}
	if decoded.Trusted != 3 || len(decoded.Correlations) != len(report.Correlations) {
		t.Errorf("decoded report = %d trusted, %d correlations", decoded.Trusted, len(decoded.Correlations))
	}

	var y bytes.Buffer
	if err := Write(&y, report, FormatYAML, false); err != nil {
		t.Fatalf("Write(yaml) error: %v", err)
	}
	if !strings.Contains(y.String(), "trusted_sessions: 3") || !strings.Contains(y.String(), "correlations:") {
		t.Errorf("yaml report missing expected keys:\n%s", y.String())
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{"text", FormatText, false},
		{" JSON ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.expected {
			t.Errorf("ParseFormat(%q) = %q, %v, expected %q", tt.in, got, err, tt.expected)
		}
	}
}
