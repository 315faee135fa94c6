package config

import (
	"errors"
	"fmt"
	"math"
)

func (c *Config) Validate() error {
	var errs []error

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("storage: %w", err))
	}

	if err := c.Prediction.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("prediction: %w", err))
	}

	if err := c.Training.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("training: %w", err))
	}

	if err := c.Regression.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("regression: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

func (s *StorageConfig) Validate() error {
	switch s.Backend {
	case BackendDisk:
		if s.DataDir == "" {
			return fmt.Errorf("data_dir cannot be empty for the disk backend")
		}
	case BackendS3:
		var errs []error
		if s.S3.Bucket == "" {
			errs = append(errs, fmt.Errorf("s3.bucket cannot be empty for the s3 backend"))
		}
		if s.S3.Region == "" {
			errs = append(errs, fmt.Errorf("s3.region cannot be empty for the s3 backend"))
		}
		return errors.Join(errs...)
	default:
		return fmt.Errorf("invalid backend: %s (valid: disk, s3)", s.Backend)
	}
	return nil
}

func (p *PredictionConfig) Validate() error {
	if math.IsNaN(p.FallbackSeconds) || math.IsInf(p.FallbackSeconds, 0) || p.FallbackSeconds <= 0 {
		return fmt.Errorf("fallback_seconds must be a positive number, got %v", p.FallbackSeconds)
	}
	return nil
}

func (t *TrainingConfig) Validate() error {
	var errs []error

	if t.MinRegressionRows < 2 {
		errs = append(errs, fmt.Errorf("min_regression_rows must be at least 2, got %d", t.MinRegressionRows))
	}

	if t.OutlierZScore <= 0 {
		errs = append(errs, fmt.Errorf("outlier_zscore must be positive, got %v", t.OutlierZScore))
	}

	return errors.Join(errs...)
}

func (r *RegressionConfig) Validate() error {
	var errs []error

	if r.C <= 0 {
		errs = append(errs, fmt.Errorf("c must be positive"))
	}

	if r.Gamma <= 0 {
		errs = append(errs, fmt.Errorf("gamma must be positive"))
	}

	if r.Epsilon < 0 {
		errs = append(errs, fmt.Errorf("epsilon must be non-negative"))
	}

	if r.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("tolerance must be positive"))
	}

	if r.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("max_iterations must be at least 1"))
	}

	return errors.Join(errs...)
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", l.Level)
	}

	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[l.Format] {
		return fmt.Errorf("invalid log format: %s (valid: json, text)", l.Format)
	}

	return nil
}
