package learning

import "errors"

var (
	// ErrInvalidTrainingData is returned for rows that fail shape or value checks.
	ErrInvalidTrainingData = errors.New("invalid training data")

	// ErrStorage wraps any artifact store failure other than a missing artifact.
	ErrStorage = errors.New("model storage failure")
)
