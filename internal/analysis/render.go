package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Format selects how a report is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (expected text, json or yaml)", s)
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *Report, format Format, verbose bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, r, verbose)
	}
	return fmt.Errorf("unknown report format %q", format)
}

func writeText(w io.Writer, r *Report, verbose bool) error {
	fmt.Fprintf(w, "Ratings read:        %s\n", humanize.Comma(int64(r.Ratings)))
	if r.BadLines > 0 {
		fmt.Fprintf(w, "Malformed lines:     %s\n", humanize.Comma(int64(r.BadLines)))
	}
	fmt.Fprintf(w, "Participant names:   %s\n", humanize.Comma(int64(r.Names)))
	fmt.Fprintf(w, "Sessions (name+ip):  %s\n", humanize.Comma(int64(r.Sessions)))
	fmt.Fprintf(w, "Longest session:     %s ratings\n", humanize.Comma(int64(r.LongestSession)))
	fmt.Fprintf(w, "Trusted sessions:    %s\n", humanize.Comma(int64(r.Trusted)))
	fmt.Fprintf(w, "Valid scores:        %s\n", humanize.Comma(int64(r.ValidScores)))
	fmt.Fprintf(w, "Pairs rated:         %s\n", humanize.Comma(int64(len(r.Pairs)+len(r.Skipped))))

	if len(r.Rejected) > 0 {
		fmt.Fprintln(w, "\nRejected sessions:")
		for _, rej := range r.Rejected {
			fmt.Fprintf(w, "  %s\n", rej)
		}
	}
	if len(r.Notes) > 0 {
		fmt.Fprintln(w, "\nNotes:")
		for _, n := range r.Notes {
			fmt.Fprintf(w, "  %s\n", n)
		}
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintln(w, "\nSkipped pairs:")
		for _, s := range r.Skipped {
			fmt.Fprintf(w, "  %s (%d scores): %s\n", s.Pair, s.Scores, s.Error)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if verbose && len(r.Pairs) > 0 {
		fmt.Fprintln(w, "\nPairs:")
		fmt.Fprintln(tw, "PAIR\tN\tMEAN\tSTDDEV\tT_N\tT_MEAN\tT_STDDEV\t")
		for _, p := range r.Pairs {
			s := p.Stats
			fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%d\t%.3f\t%.3f\t\n", p.Pair, s.N, s.Mean, s.StdDev, s.TrimmedN, s.TrimmedMean, s.TrimmedStdDev)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "\nCorrelation with human distance:")
	fmt.Fprintln(tw, "METRIC\tN\tPEARSON r\tp\tSPEARMAN ρ\tp\t")
	for _, c := range r.Correlations {
		if c.Error != "" {
			fmt.Fprintf(tw, "%s\t%d\t-\t-\t-\t-\t%s\n", c.Metric, c.N, c.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%6.3f\t%.2e\t%6.3f\t%.2e\t\n", c.Metric, c.N, c.Pearson, c.PearsonP, c.Spearman, c.SpearmanP)
	}
	return tw.Flush()
}
