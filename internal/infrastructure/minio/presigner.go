package minio

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
)

type Presigner struct {
	minioClient *minio.Client
	bucket      string
}

func NewPresigner(minioClient *minio.Client, bucket string) *Presigner {
	return &Presigner{minioClient: minioClient, bucket: bucket}
}

// PresignPut issues a write-only URL scoped to one object key.
func (p *Presigner) PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	url, err := p.minioClient.PresignedPutObject(ctx, p.bucket, key, expiry)
	if err != nil {
		return "", err
	}

	return url.String(), nil
}
