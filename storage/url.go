package storage

import (
	"net/url"
	"os"
	"strings"
)

// BuildObjectAccessURL returns the public URL for objectKey.
//
// STORAGE_ACCESS_BASE_URL wins when set; it may contain an {objectKey}
// placeholder or end in a query parameter. Otherwise the provider's default
// public host is used.
func BuildObjectAccessURL(provider, bucket, objectKey string) string {
	base := strings.TrimSpace(os.Getenv("STORAGE_ACCESS_BASE_URL"))
	if base != "" {
		if strings.Contains(base, "{objectKey}") {
			escaped := objectKey
			if strings.Contains(base, "?") {
				escaped = url.QueryEscape(objectKey)
			}
			return strings.ReplaceAll(base, "{objectKey}", escaped)
		}
		if strings.Contains(base, "?") {
			return base + url.QueryEscape(objectKey)
		}
		return strings.TrimRight(base, "/") + "/" + objectKey
	}

	switch provider {
	case ProviderGCS:
		host := strings.TrimSpace(os.Getenv("GCS_URL"))
		if host == "" {
			host = "storage.googleapis.com"
		}
		return "https://" + host + "/" + bucket + "/" + objectKey
	case ProviderS3:
		if endpoint := strings.TrimSpace(os.Getenv("S3_ENDPOINT")); endpoint != "" {
			return strings.TrimRight(endpoint, "/") + "/" + bucket + "/" + objectKey
		}
		region := strings.TrimSpace(os.Getenv("S3_REGION"))
		if region == "" {
			return "https://" + bucket + ".s3.amazonaws.com/" + objectKey
		}
		return "https://" + bucket + ".s3." + region + ".amazonaws.com/" + objectKey
	}
	return objectKey
}
