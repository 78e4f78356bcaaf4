package minio

import (
	"context"
	"time"
)

// Presigner issues short-lived write-only upload URLs scoped to one key.
type Presigner interface {
	PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error)
}
