package minio

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"context"

	"github.com/minio/minio-go/v7"
)

type Uploader struct {
	minioClient *minio.Client
	cfg         *UploaderConfig
}

func NewUploader(minioClient *minio.Client, cfg *UploaderConfig) *Uploader {
	return &Uploader{minioClient: minioClient, cfg: cfg}
}

// Put writes one object and returns its public URL. Objects are served
// inline with a long cache lifetime; keys are never derived from client
// filenames, so immutability holds.
func (u *Uploader) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(u.cfg.Timeout)*time.Millisecond)
	defer cancel()

	_, err := u.minioClient.PutObject(ctx, u.cfg.Bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType:        contentType,
			ContentDisposition: "inline",
			CacheControl:       fmt.Sprintf("public, max-age=%d, immutable", u.cfg.CacheMaxAge),
		})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return u.publicURL(key), nil
}

func (u *Uploader) publicURL(key string) string {
	base := strings.TrimSuffix(u.cfg.PublicBaseURL, "/")

	return fmt.Sprintf("%s/%s/%s", base, u.cfg.Bucket, key)
}
