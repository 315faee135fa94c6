package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskBackend keeps one file per key under a data directory.
type DiskBackend struct {
	dataDir string
	logger  *slog.Logger
}

// NewDiskBackend creates a disk backend. The directory is created lazily on
// the first Put.
func NewDiskBackend(dataDir string, logger *slog.Logger) *DiskBackend {
	return &DiskBackend{dataDir: dataDir, logger: logger}
}

// Location returns the file path for key.
func (d *DiskBackend) Location(key string) string {
	return filepath.Join(d.dataDir, key)
}

// Put writes to a uniquely named temp file and renames it over the target,
// so readers never observe a partial artifact.
func (d *DiskBackend) Put(key string, data io.Reader) error {
	// MkdirAll succeeds when the directory already exists and fails when the
	// path exists as something else.
	if err := os.MkdirAll(d.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	filePath := d.Location(key)
	tempPath := filePath + "." + uuid.NewString() + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(file, data); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, filePath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	d.logger.Debug("wrote file", "path", filePath)
	return nil
}

// Get opens the file for key.
func (d *DiskBackend) Get(key string) (io.ReadCloser, error) {
	filePath := d.Location(key)

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filePath)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}
