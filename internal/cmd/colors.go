package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"colordist/internal/colors"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Convert colors and measure distances between them",
	Long:  `Tools for converting a color between models and comparing two colors under every distance metric.`,
}

var colorsConvertCmd = &cobra.Command{
	Use:   "convert [color]",
	Short: "Show a color in every model",
	Long: `Converts one color into every model. The color is read in the model named by
--from: "#RRGGBB" or "r,g,b" for rgbd, three comma-separated numbers otherwise.`,
	Example: `  colordist colors convert "#0057B7"
  colordist colors convert --from hsv 0.6,1,0.7
  colordist colors convert --from lab2k 50,20,-30 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runColorsConvert,
}

var colorsDistanceCmd = &cobra.Command{
	Use:   "distance [colorA] [colorB]",
	Short: "Normalized distance between two display colors",
	Example: `  colordist colors distance "#0057B7" "#FFD700"
  colordist colors distance 0,0,0 255,255,255 --metric lab2k --metric hsv:linear`,
	Args: cobra.ExactArgs(2),
	RunE: runColorsDistance,
}

func init() {
	rootCmd.AddCommand(colorsCmd)
	colorsCmd.AddCommand(colorsConvertCmd)
	colorsCmd.AddCommand(colorsDistanceCmd)

	colorsConvertCmd.Flags().String("from", "rgbd", "Model the input color is given in")
	colorsConvertCmd.Flags().String("basis", "display", "RGB basis for yiq, hsv and hls (display or linear)")
	colorsConvertCmd.Flags().Bool("json", false, "Print JSON instead of a table")

	colorsDistanceCmd.Flags().StringSlice("metric", nil, "Metrics to report (default: every model), e.g. lab2k or hsv:linear")
	colorsDistanceCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}

type convertedColor struct {
	Model      string     `json:"model"`
	Components [3]float64 `json:"components"`
	Text       string     `json:"text"`
}

func runColorsConvert(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	basis, _ := cmd.Flags().GetString("basis")
	asJSON, _ := cmd.Flags().GetBool("json")

	src, err := colors.ParseMetric(from + ":" + basis)
	if err != nil {
		return fmt.Errorf("invalid --from/--basis: %w", err)
	}
	v, err := parseValue(src.Model, args[0])
	if err != nil {
		return fmt.Errorf("failed to parse color: %w", err)
	}
	display, err := src.Revert(v)
	if err != nil {
		return fmt.Errorf("failed to convert color: %w", err)
	}

	var out []convertedColor
	for _, m := range colors.Metrics() {
		m.Basis = src.Basis
		c := m.Convert(display)
		out = append(out, convertedColor{Model: m.String(), Components: c.Components(), Text: c.String()})
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"hex": display.Hex(), "values": out})
	}

	fmt.Printf("Hex: %s\n", display.Hex())
	if hsv, ok := (colors.Metric{Model: colors.ModelHSV, Basis: src.Basis}).Convert(display).(colors.HSV); ok {
		h, s, vv := hsv.Degrees()
		fmt.Printf("HSV: %d°, %d%%, %d%%\n", h, s, vv)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, c := range out {
		fmt.Fprintf(tw, "%s\t%s\n", c.Model, c.Text)
	}
	return tw.Flush()
}

func runColorsDistance(cmd *cobra.Command, args []string) error {
	names, _ := cmd.Flags().GetStringSlice("metric")
	asJSON, _ := cmd.Flags().GetBool("json")

	a, err := parseColorArg(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse colorA: %w", err)
	}
	b, err := parseColorArg(args[1])
	if err != nil {
		return fmt.Errorf("failed to parse colorB: %w", err)
	}
	metrics, err := parseMetrics(names)
	if err != nil {
		return err
	}

	distances := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		distances[m.String()] = m.Between(a, b)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"a": a.Hex(), "b": b.Hex(), "distances": distances})
	}

	fmt.Printf("%s vs %s\n", a.Hex(), b.Hex())
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, m := range metrics {
		fmt.Fprintf(tw, "%s\t%.6f\n", m, distances[m.String()])
	}
	fmt.Fprintf(tw, "ΔE76\t%.4f\n", colors.RGBDisplayToLab76(a).DeltaE(colors.RGBDisplayToLab76(b)))
	fmt.Fprintf(tw, "ΔE2000\t%.4f\n", colors.RGBDisplayToLab2k(a).DeltaE(colors.RGBDisplayToLab2k(b)))
	return tw.Flush()
}
