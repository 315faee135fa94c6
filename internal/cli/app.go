package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/NduatiK/uchukuzi/internal/config"
	"github.com/NduatiK/uchukuzi/internal/learning"
	"github.com/NduatiK/uchukuzi/internal/logger"
	"github.com/NduatiK/uchukuzi/internal/storage"
)

// app bundles what every model command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *storage.ModelStore
}

// loadConfig reads the file given with --config, or the defaults when no
// file was given. An explicit file that cannot be loaded is an error.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	log := logger.New(cfg.Logging)

	store, err := storage.Open(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open model storage: %w", err)
	}

	return &app{cfg: cfg, logger: log, store: store}, nil
}

func (a *app) trainer() *learning.Trainer {
	return learning.NewTrainer(a.store, learning.TrainerConfigFrom(a.cfg), a.logger)
}

func (a *app) predictor() *learning.Predictor {
	return learning.NewPredictor(a.store, a.cfg.Prediction.FallbackSeconds, a.logger)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
