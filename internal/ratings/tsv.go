package ratings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"colordist/internal/colors"
)

// FormatTSV renders r as one log line: ip, unix time, name, color A,
// color B and score separated by tabs, terminated by a newline. Control
// characters in the ip and name fields are written as spaces so a line
// always holds exactly six fields.
func FormatTSV(r Rating) string {
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%s\t%d\n",
		tsvField(r.IP), r.Time.Unix(), tsvField(r.Name), r.ColorA.Hex(), r.ColorB.Hex(), r.Score)
}

func tsvField(s string) string {
	return strings.Map(func(c rune) rune {
		if unicode.IsControl(c) {
			return ' '
		}
		return c
	}, s)
}

// ParseTSV parses one log line as written by FormatTSV. A trailing newline
// is optional.
func ParseTSV(line string) (Rating, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) != 6 {
		return Rating{}, fmt.Errorf("expected 6 tab-separated fields, got %d", len(fields))
	}
	ts, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Rating{}, fmt.Errorf("invalid timestamp %q: %w", fields[1], err)
	}
	a, err := colors.ParseRGBDisplay(fields[3])
	if err != nil {
		return Rating{}, fmt.Errorf("invalid color A: %w", err)
	}
	b, err := colors.ParseRGBDisplay(fields[4])
	if err != nil {
		return Rating{}, fmt.Errorf("invalid color B: %w", err)
	}
	score, err := strconv.Atoi(fields[5])
	if err != nil {
		return Rating{}, fmt.Errorf("invalid score %q: %w", fields[5], err)
	}
	if score < 0 || score > 100 {
		return Rating{}, fmt.Errorf("score %d not in [0, 100]", score)
	}
	return Rating{
		IP:     fields[0],
		Time:   time.Unix(ts, 0),
		Name:   fields[2],
		ColorA: a,
		ColorB: b,
		Score:  score,
	}, nil
}

// LineError is a log line that could not be parsed.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ReadLog parses every non-blank line of a rating log. Malformed lines are
// returned separately and do not stop the scan.
func ReadLog(r io.Reader) ([]Rating, []*LineError, error) {
	var (
		out  []Rating
		bad  []*LineError
		line int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		rt, err := ParseTSV(text)
		if err != nil {
			bad = append(bad, &LineError{Line: line, Text: text, Err: err})
			continue
		}
		out = append(out, rt)
	}
	if err := sc.Err(); err != nil {
		return out, bad, fmt.Errorf("failed to read rating log: %w", err)
	}
	return out, bad, nil
}

// ReadLogFile is ReadLog over the named file.
func ReadLogFile(path string) ([]Rating, []*LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open rating log: %w", err)
	}
	defer f.Close()
	return ReadLog(f)
}
