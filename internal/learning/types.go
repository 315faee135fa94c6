package learning

import (
	"github.com/NduatiK/uchukuzi/internal/model"
)

// ArtifactStore persists one artifact per tile.
type ArtifactStore interface {
	Write(tile string, artifact *model.Artifact) error
	// Read returns an error wrapping storage.ErrNotFound for unknown tiles.
	Read(tile string) (*model.Artifact, error)
}

// Outcome summarizes a Learn call.
type Outcome struct {
	Tile      string            `json:"tile"`
	// Kind is empty when nothing was written.
	Kind      model.Kind        `json:"kind,omitempty"`
	Rows      int               `json:"rows"`
	Kept      int               `json:"kept"`
	Dropped   int               `json:"dropped"`
	Solver    *model.SolverInfo `json:"solver,omitempty"`
	Persisted bool              `json:"persisted"`
}

// Source tells where a prediction came from.
type Source string

const (
	SourceFallback   Source = "fallback"
	SourceAverage    Source = "average"
	SourceRegression Source = "regression"
)

// Prediction is a duration estimate and its provenance.
type Prediction struct {
	Value  float64 `json:"value"`
	Source Source  `json:"source"`
}
