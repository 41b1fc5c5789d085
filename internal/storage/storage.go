package storage

import (
	"context"
	"io"
)

// ImageStore persists uploaded product images and returns the public URL
// under which the stored file is served.
type ImageStore interface {
	Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
}
