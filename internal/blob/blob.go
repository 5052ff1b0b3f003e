package blob

import (
	"context"
	"io"
)

// Store uploads image binaries and returns a stable public URL for them.
type Store interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}
