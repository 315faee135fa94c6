package model

import (
	"fmt"
)

// FitRegression standardizes the predictor columns and the target column of
// rows independently, then fits an SVR in the standardized space. The last
// value of every row is the target.
func FitRegression(rows [][]float64, p SVRParams) (*Regression, SolverInfo, error) {
	if len(rows) == 0 {
		return nil, SolverInfo{}, fmt.Errorf("no training rows")
	}
	width := len(rows[0])
	if width < 2 {
		return nil, SolverInfo{}, fmt.Errorf("rows need at least one predictor and a target, got %d columns", width)
	}

	features := width - 1
	inputCols := make([][]float64, features)
	for j := range inputCols {
		inputCols[j] = make([]float64, len(rows))
	}
	target := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, SolverInfo{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimension, i, len(row), width)
		}
		for j := 0; j < features; j++ {
			inputCols[j][i] = row[j]
		}
		target[i] = row[features]
	}

	inScaler, err := FitScaler(inputCols)
	if err != nil {
		return nil, SolverInfo{}, fmt.Errorf("fit input scaler: %w", err)
	}
	outScaler, err := FitScaler([][]float64{target})
	if err != nil {
		return nil, SolverInfo{}, fmt.Errorf("fit output scaler: %w", err)
	}

	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, row := range rows {
		if x[i], err = inScaler.Transform(row[:features]); err != nil {
			return nil, SolverInfo{}, err
		}
		scaled, err := outScaler.Transform(row[features:])
		if err != nil {
			return nil, SolverInfo{}, err
		}
		y[i] = scaled[0]
	}

	svr, info, err := FitSVR(x, y, p)
	if err != nil {
		return nil, info, fmt.Errorf("fit svr: %w", err)
	}

	return &Regression{
		InputScaler:  inScaler,
		OutputScaler: outScaler,
		Regressor:    svr,
	}, info, nil
}
