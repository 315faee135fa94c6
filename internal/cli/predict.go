package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict <tile> <x> [x...]",
	Short: "Predict the crossing time of a tile",
	Long: `Predict how many seconds a vehicle needs to cross a tile.

Pass one value per predictor column the tile was trained on. Tiles without
a model get the configured fallback duration.

Examples:
  tilemodel predict 3f2a 8
  tilemodel predict 3f2a 8 2 --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	inputs, err := parseInputs(args[1:])
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	pred, err := a.predictor().Estimate(args[0], inputs...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, pred)
	}
	fmt.Fprintf(out, "%.2f %s\n", pred.Value, sourceStyle(string(pred.Source)).Render("("+string(pred.Source)+")"))
	return nil
}

func parseInputs(args []string) ([]float64, error) {
	inputs := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid input %q: must be a number", arg)
		}
		inputs[i] = v
	}
	return inputs, nil
}
