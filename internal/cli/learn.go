package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NduatiK/uchukuzi/internal/learning"
	"github.com/NduatiK/uchukuzi/internal/records"
)

var learnCmd = &cobra.Command{
	Use:   "learn <tile>",
	Short: "Train the model for a tile",
	Long: `Rebuild the model for a tile from its full trip history.

Each row holds the predictor values followed by the observed duration in
seconds. Rows are read from a CSV file or from a SQLite query.

Examples:
  tilemodel learn 3f2a --csv trips.csv
  tilemodel learn 3f2a --sqlite trips.db --query "SELECT hour, duration FROM trips WHERE tile = '3f2a'"`,
	Args: cobra.ExactArgs(1),
	RunE: runLearn,
}

var (
	learnCSV    string
	learnSQLite string
	learnQuery  string
)

func init() {
	learnCmd.Flags().StringVar(&learnCSV, "csv", "", "CSV file with training rows (- for stdin)")
	learnCmd.Flags().StringVar(&learnSQLite, "sqlite", "", "SQLite database with training rows")
	learnCmd.Flags().StringVar(&learnQuery, "query", "", "query selecting training rows from --sqlite")
	learnCmd.MarkFlagsMutuallyExclusive("csv", "sqlite")
	learnCmd.MarkFlagsOneRequired("csv", "sqlite")
	learnCmd.MarkFlagsRequiredTogether("sqlite", "query")
	rootCmd.AddCommand(learnCmd)
}

func runLearn(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	rows, err := readRows(cmd)
	if err != nil {
		if errors.Is(err, records.ErrMalformedRecord) {
			return fmt.Errorf("%w: %w", learning.ErrInvalidTrainingData, err)
		}
		return err
	}

	outcome, err := a.trainer().Learn(args[0], rows)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, outcome)
	}

	if !outcome.Persisted {
		fmt.Fprintf(out, "No rows left for tile %s, model unchanged\n", outcome.Tile)
		return nil
	}

	fmt.Fprintln(out, titleStyle.Render("Trained tile "+outcome.Tile))
	fmt.Fprintln(out, field("Model", outcome.Kind.String()))
	fmt.Fprintln(out, field("Rows", fmt.Sprintf("%d (%d kept, %d outliers dropped)", outcome.Rows, outcome.Kept, outcome.Dropped)))
	if outcome.Solver != nil {
		fmt.Fprintln(out, field("Solver", fmt.Sprintf("%d iterations, converged=%t", outcome.Solver.Iterations, outcome.Solver.Converged)))
	}
	return nil
}

func readRows(cmd *cobra.Command) ([][]float64, error) {
	if learnSQLite != "" {
		return records.ReadSQLite(cmd.Context(), learnSQLite, learnQuery)
	}

	if learnCSV == "-" {
		return records.ReadCSV(cmd.InOrStdin())
	}
	f, err := os.Open(learnCSV)
	if err != nil {
		return nil, fmt.Errorf("failed to open rows file: %w", err)
	}
	defer f.Close()
	return records.ReadCSV(f)
}
