package learning

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/NduatiK/uchukuzi/internal/model"
	"github.com/NduatiK/uchukuzi/internal/storage"
)

// Predictor estimates durations from stored artifacts.
type Predictor struct {
	store    ArtifactStore
	fallback float64
	logger   *slog.Logger
}

// NewPredictor creates a Predictor. fallback is returned for tiles that
// have never been trained.
func NewPredictor(store ArtifactStore, fallback float64, logger *slog.Logger) *Predictor {
	return &Predictor{
		store:    store,
		fallback: fallback,
		logger:   logger,
	}
}

// Fallback returns the duration used for untrained tiles.
func (p *Predictor) Fallback() float64 {
	return p.fallback
}

// Predict returns the estimated duration for tile at input x.
func (p *Predictor) Predict(tile string, x float64) (float64, error) {
	pred, err := p.Estimate(tile, x)
	if err != nil {
		return 0, err
	}
	return pred.Value, nil
}

// Estimate returns the estimated duration for tile and where it came from.
// A missing artifact is not an error; other storage failures are.
func (p *Predictor) Estimate(tile string, inputs ...float64) (Prediction, error) {
	key, err := storage.SanitizeTile(tile)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}

	artifact, err := p.store.Read(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			p.logger.Debug("no model for tile, using fallback", "tile", key, "fallback", p.fallback)
			return Prediction{Value: p.fallback, Source: SourceFallback}, nil
		}
		return Prediction{}, fmt.Errorf("predict tile %q: %w: %w", key, ErrStorage, err)
	}

	switch artifact.Kind {
	case model.KindAverage:
		return Prediction{Value: artifact.Average.Value, Source: SourceAverage}, nil
	case model.KindRegression:
		v, err := artifact.Regression.Predict(inputs)
		if err != nil {
			return Prediction{}, fmt.Errorf("predict tile %q: %w", key, err)
		}
		return Prediction{Value: v, Source: SourceRegression}, nil
	default:
		return Prediction{}, fmt.Errorf("predict tile %q: %w: %q", key, model.ErrUnknownKind, artifact.Kind)
	}
}
