package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NduatiK/uchukuzi/internal/learning"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <tile>",
	Short: "Predict a tile over a range of inputs",
	Long: `Evaluate a tile's model at evenly spaced inputs, for example every hour
of the day. Useful for plotting a tile's learned curve.

Examples:
  tilemodel sample 3f2a
  tilemodel sample 3f2a --from 6 --to 10 --n 9 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSample,
}

var (
	sampleFrom float64
	sampleTo   float64
	sampleN    int
)

func init() {
	sampleCmd.Flags().Float64Var(&sampleFrom, "from", 0, "first input value")
	sampleCmd.Flags().Float64Var(&sampleTo, "to", 23, "last input value")
	sampleCmd.Flags().IntVar(&sampleN, "n", 24, "number of samples")
	rootCmd.AddCommand(sampleCmd)
}

type sample struct {
	X float64 `json:"x"`
	learning.Prediction
}

type sampleResult struct {
	Tile    string   `json:"tile"`
	Samples []sample `json:"samples"`
}

// sampleInputs returns n evenly spaced values from from to to inclusive.
func sampleInputs(from, to float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("--n must be at least 1, got %d", n)
	}
	if n == 1 {
		return []float64{from}, nil
	}
	step := (to - from) / float64(n-1)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = from + float64(i)*step
	}
	xs[n-1] = to
	return xs, nil
}

func runSample(cmd *cobra.Command, args []string) error {
	xs, err := sampleInputs(sampleFrom, sampleTo, sampleN)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	predictor := a.predictor()

	result := sampleResult{Tile: args[0]}
	for _, x := range xs {
		pred, err := predictor.Estimate(args[0], x)
		if err != nil {
			return err
		}
		result.Samples = append(result.Samples, sample{X: x, Prediction: pred})
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, result)
	}

	var lines []string
	lines = append(lines, titleStyle.Render("Tile "+args[0]))
	lines = append(lines, tableHeaderStyle.Render(fmt.Sprintf("  %10s │ %10s │ %-10s", "Input", "Seconds", "Source")))
	for _, s := range result.Samples {
		row := fmt.Sprintf("  %10.2f │ %10.2f │ %-10s", s.X, s.Value, s.Source)
		lines = append(lines, tableCellStyle.Render(row))
	}
	fmt.Fprintln(out, strings.Join(lines, "\n"))
	return nil
}
