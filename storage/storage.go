// Package storage puts generated artifacts into durable object storage and
// returns their public URLs.
package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const (
	ProviderGCS = "gcs"
	ProviderS3  = "s3"
)

// Access levels accepted by PutOptions.
const (
	AccessPublic  = "public"
	AccessPrivate = "private"
)

type PutOptions struct {
	Access      string
	ContentType string
}

type PutResult struct {
	Key string
	URL string
}

// ObjectStore is the durable object storage collaborator.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, opts PutOptions) (*PutResult, error)
}

func GetProvider() string {
	provider := strings.TrimSpace(strings.ToLower(os.Getenv("STORAGE_PROVIDER")))
	if provider == "" {
		return ProviderGCS
	}
	return provider
}

// NewFromEnv builds the ObjectStore selected by STORAGE_PROVIDER.
func NewFromEnv(ctx context.Context) (ObjectStore, error) {
	switch GetProvider() {
	case ProviderGCS:
		return NewGCSStore(ctx, strings.TrimSpace(os.Getenv("GCS_BUCKET")))
	case ProviderS3:
		return NewS3Store(ctx, S3Config{
			Bucket:   strings.TrimSpace(os.Getenv("S3_BUCKET")),
			Region:   strings.TrimSpace(os.Getenv("S3_REGION")),
			Endpoint: strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		})
	default:
		return nil, fmt.Errorf("storage provider %q is not supported", GetProvider())
	}
}

// Unavailable fails every Put with the error that prevented the real store
// from starting, so the rest of the service can still run.
type Unavailable struct {
	Err error
}

func (u Unavailable) Put(ctx context.Context, key string, data []byte, opts PutOptions) (*PutResult, error) {
	return nil, fmt.Errorf("object storage unavailable: %w", u.Err)
}
