// Package storage implements the media store on top of Go CDK blob buckets,
// so the same code serves local file buckets in development and cloud
// buckets in production via the configured URL.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"storefront/config"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// bucket driver
	_ "gocloud.dev/blob/memblob"  // mem:// bucket driver, used in tests
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// blobMediaStore implements service.MediaStore backed by a gocloud bucket.
type blobMediaStore struct {
	bucket *blob.Bucket
}

// New opens the bucket named by the media URL and wires its shutdown into
// the application lifecycle.
func New(params Params) (service.MediaStore, error) {
	if params.Config.Media == nil || params.Config.Media.URL == "" {
		return nil, errors.New("media bucket URL must be provided")
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, params.Config.Media.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open media bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobMediaStore{bucket: bucket}, nil
}

// Save writes the content under a fresh key and returns it. The key keeps
// the hint's extension so downloads get a sensible content type even from
// drivers that do not store metadata.
func (s *blobMediaStore) Save(ctx context.Context, nameHint string, contentType string, content io.Reader) (string, error) {
	key := newKey(nameHint)

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		writer.Close()

		return "", errors.Wrap(err, "failed to write media content")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finish media write")
	}

	return key, nil
}

// Open returns a reader for the stored content.
func (s *blobMediaStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open media content")
	}

	return reader, nil
}

// Delete removes the stored content. Deleting an absent key is not an error.
func (s *blobMediaStore) Delete(ctx context.Context, key string) error {
	exists, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return errors.Wrap(err, "failed to check media content")
	}
	if !exists {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "failed to delete media content")
	}

	return nil
}

// newKey derives a collision-free bucket key from the upload's file name.
func newKey(nameHint string) string {
	ext := strings.ToLower(path.Ext(nameHint))

	return uuid.NewString() + ext
}
