package learning

import (
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/NduatiK/uchukuzi/internal/logger"
	"github.com/NduatiK/uchukuzi/internal/model"
	"github.com/NduatiK/uchukuzi/internal/storage"
)

func testLogger() *slog.Logger {
	return logger.Discard()
}

func newDiskStore(t *testing.T) *storage.ModelStore {
	t.Helper()
	return storage.NewModelStore(storage.NewDiskBackend(t.TempDir(), testLogger()), testLogger())
}

// memStore is an in-memory ArtifactStore that can be told to fail.
type memStore struct {
	mu        sync.Mutex
	artifacts map[string]*model.Artifact
	writes    int
	writeErr  error
	readErr   error
}

func newMemStore() *memStore {
	return &memStore{artifacts: make(map[string]*model.Artifact)}
}

func (m *memStore) Write(tile string, artifact *model.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.artifacts[tile] = artifact
	return nil
}

func (m *memStore) Read(tile string) (*model.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	a, ok := m.artifacts[tile]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return a, nil
}

var errDiskFull = errors.New("disk full")
