package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/cohortly/pkg/helpers"
)

// ImageStore uploads profile images to one bucket and hands back their
// public URL.
type ImageStore struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewImageStore(client *storage.Client, bucket string) *ImageStore {
	return &ImageStore{client: client, bucket: bucket, prefix: "profiles/"}
}

func (s *ImageStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadImageToGCS(ctx, s.client, s.bucket, s.prefix+objectPath, contentType, r)
}
