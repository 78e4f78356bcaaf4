package minio

import "context"

// Reader reads a staged object back for pipeline processing. Required by the
// presigned upload shape: a write-only credential cannot validate content
// before bytes land, so the validator re-reads the object.
type Reader interface {
	Read(ctx context.Context, key string) (data []byte, contentType string, err error)
}
