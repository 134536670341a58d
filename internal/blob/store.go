// Package blob abstracts the object store that holds file contents.
// Metadata lives in Postgres; bytes live here, addressed by an opaque key.
package blob

import (
	"context"
	"io"
	"time"
)

// Store reads and writes file contents by key.
type Store interface {
	// Upload stores the object under key. size must match the number of
	// bytes the reader yields.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download opens the object for reading. The caller closes it.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Remove deletes the object. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// SignedURL returns a time-limited URL that downloads the object as
	// an attachment named fileName.
	SignedURL(ctx context.Context, key, fileName string, ttl time.Duration) (string, error)
}
