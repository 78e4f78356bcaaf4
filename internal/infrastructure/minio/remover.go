package minio

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
)

type Remover struct {
	minioClient *minio.Client
	bucket      string
	cfg         *RemoverConfig
}

func NewRemover(minioClient *minio.Client, bucket string, cfg *RemoverConfig) *Remover {
	return &Remover{minioClient: minioClient, bucket: bucket, cfg: cfg}
}

func (r *Remover) Remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Timeout)*time.Millisecond)
	defer cancel()

	err := r.minioClient.RemoveObject(ctx, r.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		logger.Error("failed to remove object", "key", key, "err", err)

		return err
	}

	return nil
}
