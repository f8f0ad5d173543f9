package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"colordist/internal/analysis"
	"colordist/internal/ratings"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ratings.tsv]",
	Short: "Screen collected ratings and correlate them with every metric",
	Long: `Reads the rating log, drops untrusted sessions, aggregates the remaining scores
per color pair and reports how well each distance metric agrees with the human
judgements (Pearson r and Spearman ρ with two-sided p-values).

Thresholds, the session blacklist and the metric list come from an optional
YAML rules file (--rules); unspecified keys keep their defaults.`,
	Example: `  colordist analyze results/ratings-2025-11-06-15-33.tsv
  colordist analyze --rules analysis.yaml --format yaml --out report.yaml
  colordist analyze --driver mysql --dsn 'user:pass@tcp(db:3306)/study'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("rules", "", "YAML file with analysis thresholds")
	analyzeCmd.Flags().StringP("format", "f", "text", "Report format: text, json or yaml")
	analyzeCmd.Flags().StringP("out", "o", "", "Write the report to a file instead of stdout")
	analyzeCmd.Flags().Bool("dump-rules", false, "Print the effective rules as YAML and exit")
	addStoreFlags(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	rulesPath, _ := cmd.Flags().GetString("rules")
	formatName, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	dumpRules, _ := cmd.Flags().GetBool("dump-rules")

	format, err := analysis.ParseFormat(formatName)
	if err != nil {
		return err
	}

	cfg := analysis.DefaultConfig()
	if rulesPath != "" {
		if cfg, err = analysis.LoadConfig(rulesPath); err != nil {
			return err
		}
	} else if err := cfg.Validate(); err != nil {
		return err
	}
	if dumpRules {
		return writeRules(cfg)
	}

	rs, badLines, err := loadRatings(cmd.Context(), args)
	if err != nil {
		return err
	}
	if viper.GetBool("verbose") {
		for _, le := range badLines {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", le)
		}
	}

	report, err := analysis.Analyze(rs, cfg)
	if err != nil {
		return fmt.Errorf("failed to analyze ratings: %w", err)
	}
	report.BadLines = len(badLines)

	var buf bytes.Buffer
	if err := analysis.Write(&buf, report, format, viper.GetBool("verbose")); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return writeOutput(outPath, buf.Bytes())
}

// loadRatings reads ratings from the file argument, the configured log, or
// MySQL when that driver is selected.
func loadRatings(ctx context.Context, args []string) ([]ratings.Rating, []*ratings.LineError, error) {
	cfg := storeConfig()
	if len(args) == 0 && cfg.Driver == "mysql" {
		store, err := ratings.OpenMySQLStore(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open MySQL store: %w", err)
		}
		defer store.Close()
		rs, err := store.List(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list ratings: %w", err)
		}
		return rs, nil, nil
	}

	path := cfg.Output
	if len(args) == 1 {
		path = args[0]
	}
	rs, bad, err := ratings.ReadLogFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rating log: %w", err)
	}
	return rs, bad, nil
}

func writeRules(cfg *analysis.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return writeOutput("", data)
}
