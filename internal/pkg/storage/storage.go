package storage

import (
	"context"
	"io"
)

// Storage abstracts where beach photos live. The local implementation is
// the only one for now; the interface keeps handlers agnostic.
type Storage interface {
	// Save writes content under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given relative path. Deleting a
	// missing file is not an error.
	Delete(ctx context.Context, path string) error
}
