package minio

import "context"

type Remover interface {
	Remove(ctx context.Context, key string) error
}
