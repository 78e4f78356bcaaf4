package minio

import (
	"context"

	"github.com/minio/minio-go/v7"

	minioRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/minio"
)

type Lister struct {
	minioClient *minio.Client
	bucket      string
}

func NewLister(minioClient *minio.Client, bucket string) *Lister {
	return &Lister{minioClient: minioClient, bucket: bucket}
}

func (l *Lister) ListKeys(ctx context.Context, prefix string) ([]minioRepo.ObjectInfo, error) {
	var out []minioRepo.ObjectInfo

	for obj := range l.minioClient.ListObjects(ctx, l.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		out = append(out, minioRepo.ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	return out, nil
}
