package minio

import "context"

// Uploader writes one sanitized object to durable storage and returns its
// public URL. Object metadata (content type, disposition, cache lifetime) is
// the implementation's concern; keys are caller-generated.
type Uploader interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
