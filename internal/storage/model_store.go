package storage

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/NduatiK/uchukuzi/internal/config"
	"github.com/NduatiK/uchukuzi/internal/model"
)

// ModelStore maps tile ids to persisted artifacts.
type ModelStore struct {
	backend Backend
	logger  *slog.Logger
	locks   *tileLocks
}

// NewModelStore creates a ModelStore over a backend.
func NewModelStore(backend Backend, logger *slog.Logger) *ModelStore {
	return &ModelStore{
		backend: backend,
		logger:  logger,
		locks:   newTileLocks(),
	}
}

// Open builds the backend selected by cfg and wraps it in a ModelStore.
func Open(cfg config.StorageConfig, logger *slog.Logger) (*ModelStore, error) {
	switch cfg.Backend {
	case config.BackendDisk:
		return NewModelStore(NewDiskBackend(cfg.DataDir, logger), logger), nil
	case config.BackendS3:
		backend, err := NewS3Backend(cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			return nil, err
		}
		return NewModelStore(backend, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

// Write replaces the artifact for tile. Writes for the same tile are
// serialized within this process; across processes the last writer wins.
func (ms *ModelStore) Write(tile string, artifact *model.Artifact) error {
	key, err := ArtifactKey(tile)
	if err != nil {
		return err
	}

	// Encode before taking the lock so a bad artifact never touches storage.
	var buf bytes.Buffer
	if err := artifact.Save(&buf); err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}

	unlock := ms.locks.Lock(key)
	defer unlock()

	if err := ms.backend.Put(key, &buf); err != nil {
		return err
	}

	ms.logger.Debug("saved artifact", "tile", key, "kind", artifact.Kind, "location", ms.backend.Location(key))
	return nil
}

// Read loads the artifact for tile. It returns an error wrapping ErrNotFound
// when the tile has never been written.
func (ms *ModelStore) Read(tile string) (*model.Artifact, error) {
	key, err := ArtifactKey(tile)
	if err != nil {
		return nil, err
	}

	r, err := ms.backend.Get(key)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	artifact := &model.Artifact{}
	if err := artifact.Load(r); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", ms.backend.Location(key), err)
	}
	return artifact, nil
}

// Location describes where the artifact for tile is stored.
func (ms *ModelStore) Location(tile string) (string, error) {
	key, err := ArtifactKey(tile)
	if err != nil {
		return "", err
	}
	return ms.backend.Location(key), nil
}
