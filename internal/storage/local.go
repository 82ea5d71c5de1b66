package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalClient writes uploads into a directory on the server's disk.
type LocalClient struct {
	dir string
}

// NewLocalClient constructs a local-disk backend rooted at dir.
// The directory is created on first use, not here.
func NewLocalClient(dir string) (*LocalClient, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload directory is required")
	}
	return &LocalClient{dir: dir}, nil
}

// EnsureBucket creates the upload directory if it does not exist.
func (l *LocalClient) EnsureBucket(_ context.Context) error {
	return os.MkdirAll(l.dir, 0o755)
}

// Put streams the object to a file under the upload directory.
func (l *LocalClient) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	dst := filepath.Join(l.dir, filepath.Base(key))
	file, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		_ = os.Remove(dst)
		return err
	}
	return file.Close()
}

// Location resolves a key to its filesystem path.
func (l *LocalClient) Location(key string) string {
	return filepath.Join(l.dir, filepath.Base(key))
}
