package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler standardizes each column to zero mean and unit variance
// using population statistics of the batch it was fitted on.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Var   []float64 `json:"var"`
	Scale []float64 `json:"scale"`
}

// FitScaler computes per-column statistics. columns[j] holds every value of
// feature j.
func FitScaler(columns [][]float64) (*StandardScaler, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns to fit")
	}

	s := &StandardScaler{
		Mean:  make([]float64, len(columns)),
		Var:   make([]float64, len(columns)),
		Scale: make([]float64, len(columns)),
	}
	for j, col := range columns {
		if len(col) == 0 {
			return nil, fmt.Errorf("column %d is empty", j)
		}
		mean, variance := stat.PopMeanVariance(col, nil)
		if !isFinite(mean) || !isFinite(variance) {
			return nil, fmt.Errorf("%w: column %d has mean %v and variance %v", ErrNonFinite, j, mean, variance)
		}
		s.Mean[j] = mean
		s.Var[j] = variance
		s.Scale[j] = scaleFor(mean, variance)
	}
	return s, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Constant columns keep a unit scale so they map to zero instead of NaN.
func scaleFor(mean, variance float64) float64 {
	scale := math.Sqrt(variance)
	if scale <= 1e-12*math.Max(1, math.Abs(mean)) {
		return 1
	}
	return scale
}

// Dim returns the number of columns the scaler was fitted on.
func (s *StandardScaler) Dim() int {
	return len(s.Mean)
}

// Validate checks the persisted fields are consistent.
func (s *StandardScaler) Validate() error {
	if len(s.Mean) == 0 {
		return fmt.Errorf("scaler has no columns")
	}
	if len(s.Scale) != len(s.Mean) || len(s.Var) != len(s.Mean) {
		return fmt.Errorf("scaler has %d means, %d variances and %d scales", len(s.Mean), len(s.Var), len(s.Scale))
	}
	for _, sc := range s.Scale {
		if sc == 0 || math.IsNaN(sc) {
			return fmt.Errorf("scaler has a zero or NaN scale")
		}
	}
	return nil
}

// Transform standardizes a single row.
func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if len(row) != s.Dim() {
		return nil, fmt.Errorf("%w: scaler expects %d values, got %d", ErrDimension, s.Dim(), len(row))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = stat.StdScore(v, s.Mean[j], s.Scale[j])
	}
	return out, nil
}

// InverseTransform maps a standardized row back to original units.
func (s *StandardScaler) InverseTransform(row []float64) ([]float64, error) {
	if len(row) != s.Dim() {
		return nil, fmt.Errorf("%w: scaler expects %d values, got %d", ErrDimension, s.Dim(), len(row))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = v*s.Scale[j] + s.Mean[j]
	}
	return out, nil
}
