package service

import (
	"context"
	"io"
)

// MediaStore abstracts the blob storage holding product videos and photos.
// The core only ever handles opaque keys; bytes never flow through the
// domain layer outside of upload and download.
type MediaStore interface {
	// Save writes the content under a store-chosen key derived from the
	// given name hint and returns that key.
	Save(ctx context.Context, nameHint string, contentType string, content io.Reader) (key string, err error)

	// Open returns a reader for the stored content.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the stored content. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
