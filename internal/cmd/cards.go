package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"colordist/internal/cards"
	"colordist/internal/colors"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Study color pairs",
	Long:  `List, preview and search for the color pairs shown to study participants.`,
}

var cardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the predefined study pairs with their distances",
	RunE:  runCardsList,
}

var cardsPreviewCmd = &cobra.Command{
	Use:   "preview [colorA colorB ...]",
	Short: "Write an HTML page showing color pairs side by side",
	Long: `Writes a self-contained HTML preview of the given pairs, or of the predefined
study pairs when no colors are given. Colors are read two at a time.`,
	RunE: runCardsPreview,
}

var cardsFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Search for a random pair at a target distance",
	Example: `  colordist cards find --metric lab76 --target 0.7 --tolerance 0.01
  colordist cards find --metric hsv:linear --target 0.3 --count 5`,
	RunE: runCardsFind,
}

func init() {
	rootCmd.AddCommand(cardsCmd)
	cardsCmd.AddCommand(cardsListCmd)
	cardsCmd.AddCommand(cardsPreviewCmd)
	cardsCmd.AddCommand(cardsFindCmd)

	cardsCmd.PersistentFlags().StringSlice("metric", nil, "Metrics to show or search (default: all)")

	cardsPreviewCmd.Flags().StringP("out", "o", "", "Output HTML file (default: a temporary file)")

	cardsFindCmd.Flags().Float64("target", 0.5, "Target normalized distance")
	cardsFindCmd.Flags().Float64("tolerance", 0.01, "Accepted deviation from the target")
	cardsFindCmd.Flags().Int("max-iter", 1_000_000, "Random pairs to try per result")
	cardsFindCmd.Flags().Int("count", 1, "Number of pairs to find")
	cardsFindCmd.Flags().Int64("seed", 0, "Random seed (0 = time based)")
	cardsFindCmd.Flags().Duration("timeout", time.Minute, "Give up after this long")
}

func runCardsList(cmd *cobra.Command, args []string) error {
	names, _ := cmd.Flags().GetStringSlice("metric")
	metrics, err := parseMetrics(names)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "#\tA\tB\t")
	for _, m := range metrics {
		fmt.Fprintf(tw, "%s\t", m)
	}
	fmt.Fprintln(tw)
	for i, p := range cards.Predefined() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t", i+1, p.A.Hex(), p.B.Hex())
		for _, m := range metrics {
			fmt.Fprintf(tw, "%.3f\t", p.Distance(m))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func runCardsPreview(cmd *cobra.Command, args []string) error {
	names, _ := cmd.Flags().GetStringSlice("metric")
	out, _ := cmd.Flags().GetString("out")

	metrics, err := parseMetrics(names)
	if err != nil {
		return err
	}

	pairs := cards.Predefined()
	if len(args) > 0 {
		if len(args)%2 != 0 {
			return fmt.Errorf("colors must be given in pairs, got %d", len(args))
		}
		pairs = pairs[:0:0]
		for i := 0; i < len(args); i += 2 {
			a, err := parseColorArg(args[i])
			if err != nil {
				return err
			}
			b, err := parseColorArg(args[i+1])
			if err != nil {
				return err
			}
			pairs = append(pairs, cards.Pair{A: a, B: b})
		}
	}

	html := cards.Preview(pairs, metrics)
	if out == "" {
		f, err := os.CreateTemp("", "colordist-preview-*.html")
		if err != nil {
			return fmt.Errorf("failed to create preview file: %w", err)
		}
		defer f.Close()
		if _, err := f.WriteString(html); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
		out = f.Name()
	} else if err := writeOutput(out, []byte(html)); err != nil {
		return err
	}

	abs, _ := filepath.Abs(out)
	fmt.Printf("Preview of %d pairs written to file://%s\n", len(pairs), abs)
	return nil
}

func runCardsFind(cmd *cobra.Command, args []string) error {
	names, _ := cmd.Flags().GetStringSlice("metric")
	target, _ := cmd.Flags().GetFloat64("target")
	tol, _ := cmd.Flags().GetFloat64("tolerance")
	maxIter, _ := cmd.Flags().GetInt("max-iter")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetInt64("seed")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	metrics := []colors.Metric{{Model: colors.ModelLab76}}
	if len(names) > 0 {
		var err error
		if metrics, err = parseMetrics(names); err != nil {
			return err
		}
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	for _, m := range metrics {
		for i := 0; i < count; i++ {
			found, err := cards.Find(ctx, cards.SearchOptions{Metric: m, Target: target, Tolerance: tol, MaxIter: maxIter}, rng)
			if err != nil {
				return err
			}
			fmt.Printf("%s: found %s after %d tries with distance %.4f\n", m, found.Pair, found.Tries, found.Distance)
		}
	}
	return nil
}
