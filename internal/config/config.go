package config

// Config is the top-level configuration of the tile model service.
type Config struct {
	Storage    StorageConfig    `yaml:"storage" json:"storage"`
	Prediction PredictionConfig `yaml:"prediction" json:"prediction"`
	Training   TrainingConfig   `yaml:"training" json:"training"`
	Regression RegressionConfig `yaml:"regression" json:"regression"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
}

// StorageConfig selects where model artifacts live.
type StorageConfig struct {
	// Backend is one of: disk, s3
	Backend string   `yaml:"backend" json:"backend"`
	DataDir string   `yaml:"data_dir" json:"data_dir"`
	S3      S3Config `yaml:"s3" json:"s3"`
}

type S3Config struct {
	Bucket string `yaml:"bucket" json:"bucket"`
	Region string `yaml:"region" json:"region"`
	Prefix string `yaml:"prefix" json:"prefix"`
}

type PredictionConfig struct {
	// FallbackSeconds is returned for tiles that have never been trained.
	// The default assumes 10 km/h over a 250 m tile.
	FallbackSeconds float64 `yaml:"fallback_seconds" json:"fallback_seconds"`
}

type TrainingConfig struct {
	// MinRegressionRows is the smallest filtered row count that gets a regression.
	// Smaller non-empty batches are stored as an average.
	MinRegressionRows int     `yaml:"min_regression_rows" json:"min_regression_rows"`
	OutlierZScore     float64 `yaml:"outlier_zscore" json:"outlier_zscore"`
}

// RegressionConfig holds the support vector regression hyperparameters.
// They are static for every tile.
type RegressionConfig struct {
	C             float64 `yaml:"c" json:"c"`
	Gamma         float64 `yaml:"gamma" json:"gamma"`
	Epsilon       float64 `yaml:"epsilon" json:"epsilon"`
	Tolerance     float64 `yaml:"tolerance" json:"tolerance"`
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}
