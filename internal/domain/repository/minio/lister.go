package minio

import (
	"context"
	"time"
)

// ObjectInfo is the subset of object metadata the reconciliation sweep needs.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type Lister interface {
	// ListKeys returns every object under the given prefix.
	ListKeys(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
