package minio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
)

type Reader struct {
	minioClient *minio.Client
	cfg         *ReaderConfig
}

func NewReader(minioClient *minio.Client, cfg *ReaderConfig) *Reader {
	return &Reader{minioClient: minioClient, cfg: cfg}
}

// Read fetches a staged object back for pipeline processing.
func (r *Reader) Read(ctx context.Context, key string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Timeout)*time.Millisecond)
	defer cancel()

	obj, err := r.minioClient.GetObject(ctx, r.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("get object %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", fmt.Errorf("read object %s: %w", key, err)
	}

	stat, err := obj.Stat()
	if err != nil {
		return nil, "", fmt.Errorf("stat object %s: %w", key, err)
	}

	return data, stat.ContentType, nil
}
