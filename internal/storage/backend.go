package storage

import (
	"errors"
	"io"
)

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("artifact not found")

// Backend stores opaque blobs under string keys. It abstracts the local
// disk as well as S3-like object stores.
type Backend interface {
	// Put replaces whatever is stored under key.
	Put(key string, data io.Reader) error
	// Get opens the object under key. Missing objects yield ErrNotFound.
	// The caller must close the returned reader.
	Get(key string) (io.ReadCloser, error)
	// Location describes where key lives, for logs and error messages.
	Location(key string) string
}
