// Package storage is the upload sink for learning-material files.
// The default backend writes into a local directory; object-store
// backends (MinIO, GCS) can be selected through configuration.
package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// ObjectStorage defines the upload operations a backend must support.
type ObjectStorage interface {
	// EnsureBucket creates the target directory or bucket if needed.
	EnsureBucket(ctx context.Context) error

	// Put stores an object under the given key.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Location resolves a key to the path or key string handed back
	// to clients, which reference it from material content.
	Location(key string) string
}

// Storage wraps an ObjectStorage backend with a stable API.
type Storage struct {
	backend ObjectStorage
}

// NewStorage constructs a Storage wrapper for the provided backend.
func NewStorage(backend ObjectStorage) *Storage {
	return &Storage{backend: backend}
}

// SaveUpload stores an uploaded file under a unique name derived from
// the original filename and returns its resolved location. Name
// uniqueness comes from the UUID prefix, so concurrent uploads of the
// same filename cannot clash.
func (s *Storage) SaveUpload(ctx context.Context, originalFilename string, r io.Reader, size int64, contentType string) (string, error) {
	if err := s.backend.EnsureBucket(ctx); err != nil {
		return "", err
	}

	key := uuid.New().String() + "_" + filepath.Base(originalFilename)
	if err := s.backend.Put(ctx, key, r, size, contentType); err != nil {
		return "", err
	}
	return s.backend.Location(key), nil
}
