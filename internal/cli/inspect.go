package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/NduatiK/uchukuzi/internal/model"
	"github.com/NduatiK/uchukuzi/internal/storage"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <tile>",
	Short: "Show the stored model of a tile",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

type inspectResult struct {
	Tile           string     `json:"tile"`
	Location       string     `json:"location"`
	Trained        bool       `json:"trained"`
	Kind           model.Kind `json:"kind,omitempty"`
	Rows           int        `json:"rows,omitempty"`
	Dropped        int        `json:"dropped,omitempty"`
	TrainedAt      *time.Time `json:"trained_at,omitempty"`
	Average        *float64   `json:"average,omitempty"`
	Features       int        `json:"features,omitempty"`
	SupportVectors int        `json:"support_vectors,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	tile, err := storage.SanitizeTile(args[0])
	if err != nil {
		return err
	}
	location, err := a.store.Location(tile)
	if err != nil {
		return err
	}

	result := inspectResult{Tile: tile, Location: location}

	artifact, err := a.store.Read(tile)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return err
	default:
		result.Trained = true
		result.Kind = artifact.Kind
		result.Rows = artifact.Meta.Rows
		result.Dropped = artifact.Meta.Dropped
		trainedAt := artifact.Meta.TrainedAt
		result.TrainedAt = &trainedAt
		switch artifact.Kind {
		case model.KindAverage:
			v := artifact.Average.Value
			result.Average = &v
		case model.KindRegression:
			result.Features = artifact.Regression.Features()
			result.SupportVectors = len(artifact.Regression.Regressor.SupportVectors)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, result)
	}

	fmt.Fprintln(out, titleStyle.Render("Tile "+result.Tile))
	fmt.Fprintln(out, field("Location", result.Location))
	if !result.Trained {
		fmt.Fprintln(out, field("Model", fmt.Sprintf("none (fallback %.2fs)", a.predictor().Fallback())))
		return nil
	}
	fmt.Fprintln(out, field("Model", result.Kind.String()))
	fmt.Fprintln(out, field("Rows", fmt.Sprintf("%d (%d outliers dropped)", result.Rows, result.Dropped)))
	fmt.Fprintln(out, field("Trained", result.TrainedAt.Format(time.RFC3339)))
	if result.Average != nil {
		fmt.Fprintln(out, field("Average", fmt.Sprintf("%.2fs", *result.Average)))
	} else {
		fmt.Fprintln(out, field("Features", fmt.Sprint(result.Features)))
		fmt.Fprintln(out, field("Support vectors", fmt.Sprint(result.SupportVectors)))
	}
	return nil
}
