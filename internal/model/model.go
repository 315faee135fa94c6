// Package model holds the per-tile model representation: a tagged artifact
// that is either a plain average or a fitted support vector regressor with
// the scalers needed to use it.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Kind tags the payload carried by an Artifact.
type Kind string

const (
	KindAverage    Kind = "average"
	KindRegression Kind = "regression"
)

// IsValid checks if the kind is known.
func (k Kind) IsValid() bool {
	switch k {
	case KindAverage, KindRegression:
		return true
	}
	return false
}

// String returns string representation.
func (k Kind) String() string {
	return string(k)
}

var (
	ErrUnknownKind = errors.New("unknown artifact kind")
	ErrDimension   = errors.New("input dimension mismatch")
	ErrNonFinite   = errors.New("statistic is not finite")
)

// Artifact is the persisted model for one tile. Exactly one of Average and
// Regression is set, selected by Kind.
type Artifact struct {
	Kind       Kind        `json:"kind"`
	Average    *Average    `json:"average,omitempty"`
	Regression *Regression `json:"regression,omitempty"`
	Meta       Metadata    `json:"meta"`
}

// Metadata describes how an artifact was produced.
type Metadata struct {
	Tile      string    `json:"tile"`
	Rows      int       `json:"rows"`
	Dropped   int       `json:"dropped"`
	TrainedAt time.Time `json:"trained_at"`
}

// Average is used when there were too few rows to fit a regression.
type Average struct {
	Value float64 `json:"value"`
}

// Regression is a fitted regressor and the scalers that surround it.
type Regression struct {
	InputScaler  *StandardScaler `json:"input_scaler"`
	OutputScaler *StandardScaler `json:"output_scaler"`
	Regressor    *SVR            `json:"regressor"`
}

// NewAverageArtifact wraps a mean target value.
func NewAverageArtifact(value float64, meta Metadata) *Artifact {
	return &Artifact{
		Kind:    KindAverage,
		Average: &Average{Value: value},
		Meta:    meta,
	}
}

// NewRegressionArtifact wraps a fitted regression.
func NewRegressionArtifact(r *Regression, meta Metadata) *Artifact {
	return &Artifact{
		Kind:       KindRegression,
		Regression: r,
		Meta:       meta,
	}
}

// Validate checks that the tag and the payload agree.
func (a *Artifact) Validate() error {
	switch a.Kind {
	case KindAverage:
		if a.Average == nil {
			return fmt.Errorf("average artifact has no value")
		}
		if a.Regression != nil {
			return fmt.Errorf("average artifact carries a regression payload")
		}
	case KindRegression:
		if a.Regression == nil {
			return fmt.Errorf("regression artifact has no regression payload")
		}
		if a.Average != nil {
			return fmt.Errorf("regression artifact carries an average payload")
		}
		return a.Regression.Validate()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, a.Kind)
	}
	return nil
}

// Estimate returns the modelled duration for the given predictor values.
// Average artifacts ignore their inputs.
func (a *Artifact) Estimate(inputs ...float64) (float64, error) {
	switch a.Kind {
	case KindAverage:
		return a.Average.Value, nil
	case KindRegression:
		return a.Regression.Predict(inputs)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, a.Kind)
	}
}

// Features is the number of predictor columns the regression was fitted on.
func (r *Regression) Features() int {
	return r.InputScaler.Dim()
}

// Validate checks that scalers and regressor have consistent shapes.
func (r *Regression) Validate() error {
	if r.InputScaler == nil || r.OutputScaler == nil || r.Regressor == nil {
		return fmt.Errorf("regression is missing a scaler or regressor")
	}
	if err := r.InputScaler.Validate(); err != nil {
		return fmt.Errorf("input scaler: %w", err)
	}
	if err := r.OutputScaler.Validate(); err != nil {
		return fmt.Errorf("output scaler: %w", err)
	}
	if r.OutputScaler.Dim() != 1 {
		return fmt.Errorf("output scaler must be one-dimensional, got %d", r.OutputScaler.Dim())
	}
	if err := r.Regressor.Validate(r.InputScaler.Dim()); err != nil {
		return fmt.Errorf("regressor: %w", err)
	}
	return nil
}

// Predict scales inputs, runs the regressor and maps the result back to
// target units.
func (r *Regression) Predict(inputs []float64) (float64, error) {
	scaled, err := r.InputScaler.Transform(inputs)
	if err != nil {
		return 0, err
	}
	out, err := r.OutputScaler.InverseTransform([]float64{r.Regressor.Predict(scaled)})
	if err != nil {
		return 0, err
	}
	return out[0], nil
}
