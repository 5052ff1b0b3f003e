package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

// Upload writes the object and returns its public HTTPS URL. The bucket is
// expected to allow public reads; URL issuance is purely deterministic.
func (s *GCSStore) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", name, err)
	}

	return objectPublicURL(s.bucket, name), nil
}

func objectPublicURL(bucket, object string) string {
	object = strings.TrimLeft(object, "/")
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}
