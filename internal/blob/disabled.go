package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotConfigured = errors.New("image storage is not configured")

type disabledStore struct{}

// NewDisabledStore stands in when no bucket is configured. Item writes
// without an image are unaffected; uploads fail with ErrNotConfigured.
func NewDisabledStore() Store {
	return disabledStore{}
}

func (disabledStore) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}
