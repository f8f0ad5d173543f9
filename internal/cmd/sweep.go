package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"colordist/internal/colors"
	"colordist/internal/sweep"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Bulk jobs over many colors",
}

var sweepRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Distance distribution of random color pairs per metric",
	Long: `Measures uniformly random display-color pairs (plus a few fixed anchor pairs)
under every metric and prints min, max, mean, standard deviation and excess
kurtosis. The largest raw ΔE76 and ΔE2000 seen are reported next to the
constants used for normalization.`,
	RunE: runSweepRange,
}

var sweepRoundTripCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Check that every grid color survives conversion and back",
	RunE:  runSweepRoundTrip,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.AddCommand(sweepRangeCmd)
	sweepCmd.AddCommand(sweepRoundTripCmd)

	sweepCmd.PersistentFlags().IntP("workers", "w", runtime.NumCPU(), "Number of parallel workers")
	sweepCmd.PersistentFlags().StringSlice("metric", nil, "Metrics to include (default: all)")
	sweepCmd.PersistentFlags().Bool("json", false, "Print JSON instead of a table")

	sweepRangeCmd.Flags().IntP("pairs", "n", 100_000, "Number of random pairs")
	sweepRangeCmd.Flags().Int64("seed", 0, "Random seed (0 = time based)")

	sweepRoundTripCmd.Flags().Int("step", 5, "Grid step over each 8-bit channel")
	sweepRoundTripCmd.Flags().Float64("tolerance", colors.DefaultTolerance, "Per-channel tolerance")
	sweepRoundTripCmd.Flags().Int("max-failures", 20, "Failures to list")
}

func runSweepRange(cmd *cobra.Command, args []string) error {
	workers, _ := cmd.Flags().GetInt("workers")
	names, _ := cmd.Flags().GetStringSlice("metric")
	asJSON, _ := cmd.Flags().GetBool("json")
	pairs, _ := cmd.Flags().GetInt("pairs")
	seed, _ := cmd.Flags().GetInt64("seed")

	metrics, err := parseMetrics(names)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	report, err := sweep.RandomPairs(cmd.Context(), sweep.RangeOptions{Pairs: pairs, Workers: workers, Seed: seed, Metrics: metrics})
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Measured %s pairs in %v (seed %d)\n", humanize.Comma(report.Pairs), time.Since(start).Round(time.Millisecond), seed)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tMIN\tMAX\tMEAN\tSTDDEV\tEXCESS KURTOSIS\t")
	for _, s := range report.Summaries {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n", s.Metric, s.Min, s.Max, s.Mean, s.StdDev, s.ExcessKurtosis)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Printf("Max ΔE76:   %.3f (normalization reference %.3f)\n", report.MaxDeltaE76, colors.GamutMaxDeltaE76)
	fmt.Printf("Max ΔE2000: %.3f (normalization reference %.3f)\n", report.MaxDeltaE00, colors.GamutMaxDeltaE2000)
	return nil
}

func runSweepRoundTrip(cmd *cobra.Command, args []string) error {
	workers, _ := cmd.Flags().GetInt("workers")
	names, _ := cmd.Flags().GetStringSlice("metric")
	asJSON, _ := cmd.Flags().GetBool("json")
	step, _ := cmd.Flags().GetInt("step")
	tol, _ := cmd.Flags().GetFloat64("tolerance")
	maxFailures, _ := cmd.Flags().GetInt("max-failures")

	var metrics []colors.Metric
	if len(names) > 0 {
		var err error
		if metrics, err = parseMetrics(names); err != nil {
			return err
		}
	}

	start := time.Now()
	report, err := sweep.RoundTrips(cmd.Context(), sweep.RoundTripOptions{
		Step:        step,
		Workers:     workers,
		Tolerance:   tol,
		Metrics:     metrics,
		MaxFailures: maxFailures,
	})
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Printf("Checked %s colors, %s conversions in %v\n",
			humanize.Comma(report.Colors), humanize.Comma(report.Checks), time.Since(start).Round(time.Millisecond))
		for _, f := range report.Failures {
			fmt.Printf("  FAIL %-11s %s -> %s\n", f.Metric, f.Color, f.Back)
		}
	}
	if report.Failed > 0 {
		return fmt.Errorf("%s of %s round trips failed", humanize.Comma(report.Failed), humanize.Comma(report.Checks))
	}
	return nil
}
