package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"colordist/internal/cards"
	"colordist/internal/colors"
	"colordist/internal/ratings"
)

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Rate the study pairs in the terminal",
	Long: `Runs the rating study in a 24-bit color terminal. Each predefined pair is shown
side by side and you score how similar the two colors look, from 0 (completely
different) to 100 (identical). Ratings go to the configured store just like
submissions to the web service. Press Ctrl+C to stop early.`,
	RunE: runRate,
}

func init() {
	rootCmd.AddCommand(rateCmd)

	rateCmd.Flags().String("name", "", "Participant name (prompted when empty)")
	rateCmd.Flags().Bool("shuffle", true, "Show pairs in random order")
	rateCmd.Flags().Bool("swap", true, "Randomly swap the left and right color")
	rateCmd.Flags().Int("limit", 0, "Rate at most this many pairs (0 = all)")
	addStoreFlags(rateCmd)
}

func runRate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	shuffle, _ := cmd.Flags().GetBool("shuffle")
	swap, _ := cmd.Flags().GetBool("swap")
	limit, _ := cmd.Flags().GetInt("limit")

	if name == "" {
		prompt := &survey.Input{Message: "Your name:"}
		if err := survey.AskOne(prompt, &name, survey.WithValidator(survey.Required)); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return fmt.Errorf("failed to read name: %w", err)
		}
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pairs := cards.Predefined()
	if shuffle {
		rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })
	}
	if limit > 0 && limit < len(pairs) {
		pairs = pairs[:limit]
	}

	truecolor := term.IsTerminal(int(os.Stdout.Fd()))
	rated := 0
	for i, p := range pairs {
		a, b := p.A, p.B
		if swap && rng.Intn(2) == 1 {
			a, b = b, a
		}
		fmt.Printf("\nPair %d of %d\n", i+1, len(pairs))
		printSwatches(os.Stdout, a, b, truecolor)

		var answer string
		prompt := &survey.Input{Message: "How similar are they? (0 = completely different, 100 = identical)"}
		if err := survey.AskOne(prompt, &answer, survey.WithValidator(validateScore)); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				break
			}
			return fmt.Errorf("failed to read score: %w", err)
		}

		sub := ratings.Submission{Name: name, ColorA: a.Hex(), ColorB: b.Hex(), Score: json.Number(strings.TrimSpace(answer))}
		r, err := sub.Rating("terminal", time.Now())
		if err != nil {
			return err
		}
		if err := store.Append(cmd.Context(), r); err != nil {
			return fmt.Errorf("failed to store rating: %w", err)
		}
		rated++
	}

	fmt.Printf("\nThanks, %s! %d ratings recorded.\n", ratings.NormalizeName(name), rated)
	return nil
}

func validateScore(ans interface{}) error {
	s, _ := ans.(string)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 100 {
		return errors.New("enter a whole number from 0 to 100")
	}
	return nil
}

// printSwatches draws the two colors as blocks of 24-bit background color,
// or prints their hex codes when stdout is not a terminal.
func printSwatches(w io.Writer, a, b colors.RGBDisplay, truecolor bool) {
	if !truecolor {
		fmt.Fprintf(w, "  %s    %s\n", a.Hex(), b.Hex())
		return
	}
	block := strings.Repeat(" ", 16)
	for i := 0; i < 4; i++ {
		fmt.Fprintf(w, "  %s   %s\n", swatchCell(a, block), swatchCell(b, block))
	}
}

func swatchCell(c colors.RGBDisplay, text string) string {
	r, g, b := c.EightBit()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, text)
}
