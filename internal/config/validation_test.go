package config

import (
	"math"
	"testing"
)

func TestValidateDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidateStorage(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*StorageConfig)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			modify:  func(s *StorageConfig) {},
			wantErr: false,
		},
		{
			name:    "empty data dir",
			modify:  func(s *StorageConfig) { s.DataDir = "" },
			wantErr: true,
		},
		{
			name:    "unknown backend",
			modify:  func(s *StorageConfig) { s.Backend = "gcs" },
			wantErr: true,
		},
		{
			name: "s3 without bucket",
			modify: func(s *StorageConfig) {
				s.Backend = BackendS3
				s.S3.Region = "eu-west-1"
			},
			wantErr: true,
		},
		{
			name: "s3 complete",
			modify: func(s *StorageConfig) {
				s.Backend = BackendS3
				s.S3.Bucket = "tiles"
				s.S3.Region = "eu-west-1"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg.Storage)
			err := cfg.Storage.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidatePrediction(t *testing.T) {
	tests := []struct {
		fallback float64
		wantErr  bool
	}{
		{90, false},
		{480, false},
		{0, true},
		{-1, true},
		{math.NaN(), true},
		{math.Inf(1), true},
	}

	for _, tt := range tests {
		p := PredictionConfig{FallbackSeconds: tt.fallback}
		err := p.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("fallback %v: wantErr=%v, got %v", tt.fallback, tt.wantErr, err)
		}
	}
}

func TestValidateTraining(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TrainingConfig
		wantErr bool
	}{
		{"defaults", TrainingConfig{MinRegressionRows: 10, OutlierZScore: 3}, false},
		{"too few rows", TrainingConfig{MinRegressionRows: 1, OutlierZScore: 3}, true},
		{"zero zscore", TrainingConfig{MinRegressionRows: 10, OutlierZScore: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateRegression(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*RegressionConfig)
		wantErr bool
	}{
		{"defaults", func(r *RegressionConfig) {}, false},
		{"zero c", func(r *RegressionConfig) { r.C = 0 }, true},
		{"negative gamma", func(r *RegressionConfig) { r.Gamma = -0.1 }, true},
		{"zero epsilon allowed", func(r *RegressionConfig) { r.Epsilon = 0 }, false},
		{"negative epsilon", func(r *RegressionConfig) { r.Epsilon = -1 }, true},
		{"zero tolerance", func(r *RegressionConfig) { r.Tolerance = 0 }, true},
		{"zero iterations", func(r *RegressionConfig) { r.MaxIterations = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg.Regression)
			err := cfg.Regression.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateLogging(t *testing.T) {
	tests := []struct {
		level   string
		format  string
		wantErr bool
	}{
		{"debug", "json", false},
		{"info", "text", false},
		{"warn", "json", false},
		{"error", "json", false},
		{"trace", "json", true},
		{"info", "xml", true},
	}

	for _, tt := range tests {
		l := LoggingConfig{Level: tt.level, Format: tt.format}
		err := l.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("level=%s format=%s: wantErr=%v, got %v", tt.level, tt.format, tt.wantErr, err)
		}
	}
}
