// Package imagestore persists billboard images in a Cloud Storage bucket.
package imagestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// GCSStore stores billboard images as public objects in one bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates an image store over the given bucket. Credentials
// come from the environment (application default credentials).
func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// Put writes an object and returns its public URL.
func (s *GCSStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", name, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, name), nil
}

// Remove deletes an object. Missing objects are not an error; deny flows
// may race with each other.
func (s *GCSStore) Remove(ctx context.Context, name string) error {
	err := s.client.Bucket(s.bucket).Object(name).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
