package learning

import (
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/NduatiK/uchukuzi/internal/config"
	"github.com/NduatiK/uchukuzi/internal/model"
	"github.com/NduatiK/uchukuzi/internal/storage"
)

// TrainerConfig holds training parameters.
type TrainerConfig struct {
	MinRegressionRows int
	OutlierZScore     float64
	SVR               model.SVRParams
}

// DefaultTrainerConfig returns the defaults: regression from 10 rows,
// outliers beyond 3 standard deviations.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		MinRegressionRows: 10,
		OutlierZScore:     3,
		SVR:               model.DefaultSVRParams(),
	}
}

// TrainerConfigFrom maps the file configuration onto a TrainerConfig.
func TrainerConfigFrom(cfg *config.Config) TrainerConfig {
	return TrainerConfig{
		MinRegressionRows: cfg.Training.MinRegressionRows,
		OutlierZScore:     cfg.Training.OutlierZScore,
		SVR: model.SVRParams{
			C:             cfg.Regression.C,
			Gamma:         cfg.Regression.Gamma,
			Epsilon:       cfg.Regression.Epsilon,
			Tolerance:     cfg.Regression.Tolerance,
			MaxIterations: cfg.Regression.MaxIterations,
		},
	}
}

// Trainer rebuilds a tile's artifact from a full batch of observation rows.
type Trainer struct {
	store  ArtifactStore
	config TrainerConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewTrainer creates a new Trainer.
func NewTrainer(store ArtifactStore, cfg TrainerConfig, logger *slog.Logger) *Trainer {
	return &Trainer{
		store:  store,
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Learn trains and persists the artifact for tile. The last column of each
// row is the target duration, the others are predictors.
//
// Outliers on the target are removed first. An empty batch writes nothing,
// fewer than MinRegressionRows rows store their mean target, anything larger
// stores a fitted regression. Any existing artifact is replaced.
func (t *Trainer) Learn(tile string, rows [][]float64) (*Outcome, error) {
	key, err := storage.SanitizeTile(tile)
	if err != nil {
		return nil, fmt.Errorf("learn: %w", err)
	}

	if err := validateRows(rows); err != nil {
		return nil, fmt.Errorf("learn tile %q: %w", key, err)
	}

	outcome := &Outcome{Tile: key, Rows: len(rows)}

	kept, dropped := removeOutliers(rows, t.config.OutlierZScore)
	outcome.Kept = len(kept)
	outcome.Dropped = dropped
	if dropped > 0 {
		t.logger.Debug("removed outliers", "tile", key, "rows", len(rows), "dropped", dropped)
	}

	if len(kept) == 0 {
		t.logger.Debug("no rows to learn from, leaving tile untouched", "tile", key)
		return outcome, nil
	}

	meta := model.Metadata{
		Tile:      key,
		Rows:      len(kept),
		Dropped:   dropped,
		TrainedAt: t.now().UTC(),
	}

	var artifact *model.Artifact
	if len(kept) < t.config.MinRegressionRows {
		mean := stat.Mean(targets(kept), nil)
		if !isFinite(mean) {
			return nil, fmt.Errorf("learn tile %q: %w: mean target overflows", key, ErrInvalidTrainingData)
		}
		artifact = model.NewAverageArtifact(mean, meta)
	} else {
		reg, info, err := model.FitRegression(kept, t.config.SVR)
		if err != nil {
			return nil, fmt.Errorf("learn tile %q: %w: %w", key, ErrInvalidTrainingData, err)
		}
		if !info.Converged {
			t.logger.Warn("regression solver hit the iteration limit",
				"tile", key,
				"iterations", info.Iterations,
			)
		}
		outcome.Solver = &info
		artifact = model.NewRegressionArtifact(reg, meta)
	}

	if err := t.store.Write(key, artifact); err != nil {
		return nil, fmt.Errorf("learn tile %q: %w: %w", key, ErrStorage, err)
	}

	outcome.Kind = artifact.Kind
	outcome.Persisted = true

	t.logger.Info("model trained",
		"tile", key,
		"kind", artifact.Kind,
		"rows", len(rows),
		"dropped", dropped,
	)
	return outcome, nil
}
