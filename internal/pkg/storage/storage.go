package storage

import (
	"context"
	"io"
)

// FileStorage stores leave supporting documents. The core only ever keeps the
// returned handle/URL; rendering and retention belong to the surrounding
// application.
type FileStorage interface {
	// Upload stores a file under path and returns a public URL for it.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a stored file.
	Delete(ctx context.Context, path string) error
}
