package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// Filesystem stores blobs on local disk. The directory is served
// statically under /files/ so the returned URLs resolve.
type Filesystem struct {
	dir     string
	baseURL string
}

// NewFilesystem creates the directory if needed. baseURL is the public
// prefix the files are served under, e.g. "http://localhost:8080/files".
func NewFilesystem(dir, baseURL string) (*Filesystem, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir: %w", err)
	}
	return &Filesystem{dir: dir, baseURL: baseURL}, nil
}

func (fs *Filesystem) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	f, err := os.Create(filepath.Join(fs.dir, key))
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("storage: write %s: %w", key, err)
	}
	return fs.baseURL + "/" + url.PathEscape(key), nil
}

// Dir returns the backing directory, for wiring the static file route.
func (fs *Filesystem) Dir() string {
	return fs.dir
}
