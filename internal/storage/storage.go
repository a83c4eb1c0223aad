package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Service stores user uploaded objects such as profile pictures.
type Service interface {
	// PutObject uploads body under key and returns its s3:// location.
	PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}

// Location formats the s3:// reference stored on records.
func Location(bucket, key string) string {
	return fmt.Sprintf("s3://%s/%s", bucket, strings.TrimPrefix(key, "/"))
}

// IsLocation reports whether ref points into object storage.
func IsLocation(ref string) bool {
	return strings.HasPrefix(ref, "s3://")
}

// ParseLocation returns the object key of an s3:// location, checking it
// belongs to bucket when bucket is set.
func ParseLocation(location, bucket string) (string, error) {
	if !IsLocation(location) {
		return "", fmt.Errorf("invalid s3 location")
	}
	rest := strings.TrimPrefix(location, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) == 0 || parts[0] == "" {
		return "", fmt.Errorf("invalid s3 location")
	}
	if bucket != "" && parts[0] != bucket {
		return "", fmt.Errorf("s3 bucket mismatch")
	}
	if len(parts) == 1 || strings.TrimPrefix(parts[1], "/") == "" {
		return "", fmt.Errorf("s3 key missing")
	}
	return strings.TrimPrefix(parts[1], "/"), nil
}
