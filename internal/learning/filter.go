package learning

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// validateRows checks that every row has the same width, at least one
// predictor plus the target, and only finite values.
func validateRows(rows [][]float64) error {
	if len(rows) == 0 {
		return nil
	}

	width := len(rows[0])
	if width < 2 {
		return fmt.Errorf("%w: rows need a predictor and a target, row 0 has %d columns", ErrInvalidTrainingData, width)
	}

	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidTrainingData, i, len(row), width)
		}
		for j, v := range row {
			if !isFinite(v) {
				return fmt.Errorf("%w: row %d column %d is not a finite number", ErrInvalidTrainingData, i, j)
			}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func targets(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row[len(row)-1]
	}
	return out
}

// removeOutliers drops rows whose target lies threshold or more sample
// standard deviations from the batch mean. Batches where the deviation is
// zero or the statistics are not finite are returned as is.
func removeOutliers(rows [][]float64, threshold float64) (kept [][]float64, dropped int) {
	if len(rows) < 2 {
		return rows, 0
	}

	y := targets(rows)
	mean, std := stat.MeanStdDev(y, nil)
	if std == 0 || !isFinite(mean) || !isFinite(std) {
		return rows, 0
	}

	kept = make([][]float64, 0, len(rows))
	for i, row := range rows {
		if math.Abs(stat.StdScore(y[i], mean, std)) < threshold {
			kept = append(kept, row)
		}
	}
	return kept, len(rows) - len(kept)
}
