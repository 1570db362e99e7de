package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSStore struct {
	client *gcs.Client
	bucket string
}

// getGoogleClient initializes a Google Cloud Storage client.
// Prefer ADC (Cloud Run service account / GOOGLE_APPLICATION_CREDENTIALS);
// GCS_CREDENTIALS_JSON provides explicit JSON credentials (e.g. locally).
func getGoogleClient(ctx context.Context) (*gcs.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		return gcs.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	}
	return gcs.NewClient(ctx)
}

func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("GCS_BUCKET is required")
	}
	client, err := getGoogleClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Put(ctx context.Context, key string, data []byte, opts PutOptions) (*PutResult, error) {
	wc := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = opts.ContentType
	if opts.Access == AccessPublic {
		wc.PredefinedACL = "publicRead"
	}

	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return nil, fmt.Errorf("failed to upload to Google Cloud Storage: %w", err)
	}
	if err := wc.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}
	return &PutResult{
		Key: key,
		URL: BuildObjectAccessURL(ProviderGCS, s.bucket, key),
	}, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
