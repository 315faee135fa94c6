package config

const (
	BackendDisk = "disk"
	BackendS3   = "s3"
)

func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendDisk,
			DataDir: "./models",
			S3: S3Config{
				Prefix: "models/",
			},
		},
		Prediction: PredictionConfig{
			FallbackSeconds: 90,
		},
		Training: TrainingConfig{
			MinRegressionRows: 10,
			OutlierZScore:     3,
		},
		Regression: RegressionConfig{
			C:             100,
			Gamma:         0.1,
			Epsilon:       0.1,
			Tolerance:     1e-3,
			MaxIterations: 1_000_000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
