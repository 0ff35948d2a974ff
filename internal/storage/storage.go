// Package storage abstracts the blob store behind the upload relay.
// Two backends: local filesystem for development, S3-compatible object
// storage for production. Key collisions are the provider's problem;
// keys are uuid-prefixed so they effectively never collide.
package storage

import (
	"context"
	"io"
)

// Store persists one uploaded blob and returns its publicly resolvable
// URL. Each call is independent; implementations hold no per-call state
// so arbitrarily many uploads may be in flight at once.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (url string, err error)
}
