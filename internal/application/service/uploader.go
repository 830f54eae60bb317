package service

import (
	"context"
	"errors"
	"io"
)

var ErrObjectExists = errors.New("object already exists")

// Uploader stores blobs under caller-chosen keys.
type Uploader interface {
	// Upload creates key and returns its public URL. An existing key is never
	// replaced; the call fails with ErrObjectExists instead.
	Upload(ctx context.Context, key string, file io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyForURL maps a URL returned by Upload back to its key.
	KeyForURL(url string) (string, bool)
}
