package minio

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	minioGo "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	TestAccessKey = "minioadmin"
	TestSecretKey = "minioadmin"
	BucketName    = "photos-test"
)

func setupMinio(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     TestAccessKey,
			"MINIO_ROOT_PASSWORD": TestSecretKey,
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatal("Failed to start container:", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatal(err)
	}

	client, err := New(&ClientConfig{
		AccessKey: TestAccessKey,
		SecretKey: TestSecretKey,
		Endpoint:  endpoint,
		UseSSL:    false,
	})
	if err != nil {
		t.Fatal("Failed to create minio client:", err)
	}

	require.NoError(t, client.EnsureBucket(ctx, BucketName))

	return client
}

func TestPut(t *testing.T) {
	client := setupMinio(t)
	ctx := context.Background()

	uploader := NewUploader(client.MinioClient, &UploaderConfig{
		Timeout:       30000,
		Bucket:        BucketName,
		PublicBaseURL: "http://cdn.example/",
		CacheMaxAge:   31536000,
	})

	payload := []byte("jpeg bytes")
	url, err := uploader.Put(ctx, "gallery/abc123.jpg", payload, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.example/"+BucketName+"/gallery/abc123.jpg", url)

	obj, err := client.MinioClient.GetObject(ctx, BucketName, "gallery/abc123.jpg", minioGo.GetObjectOptions{})
	require.NoError(t, err)
	defer obj.Close()

	stored, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, payload, stored)

	stat, err := obj.Stat()
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", stat.ContentType)
	assert.Contains(t, stat.Metadata.Get("Cache-Control"), "immutable")
}

func TestReadAndRemove(t *testing.T) {
	client := setupMinio(t)
	ctx := context.Background()

	uploader := NewUploader(client.MinioClient, &UploaderConfig{
		Timeout:       30000,
		Bucket:        BucketName,
		PublicBaseURL: "http://cdn.example",
	})
	reader := NewReader(client.MinioClient, &ReaderConfig{Timeout: 30000, Bucket: BucketName})
	remover := NewRemover(client.MinioClient, BucketName, &RemoverConfig{Timeout: 30000})

	payload := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	_, err := uploader.Put(ctx, "staging/xyz.png", payload, "image/png")
	require.NoError(t, err)

	data, contentType, err := reader.Read(ctx, "staging/xyz.png")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/png", contentType)

	require.NoError(t, remover.Remove(ctx, "staging/xyz.png"))

	_, _, err = reader.Read(ctx, "staging/xyz.png")
	assert.Error(t, err)
}

func TestListKeys(t *testing.T) {
	client := setupMinio(t)
	ctx := context.Background()

	uploader := NewUploader(client.MinioClient, &UploaderConfig{
		Timeout:       30000,
		Bucket:        BucketName,
		PublicBaseURL: "http://cdn.example",
	})
	lister := NewLister(client.MinioClient, BucketName)

	for _, key := range []string{"avatars/a.jpg", "avatars/b.jpg", "gallery/c.jpg"} {
		_, err := uploader.Put(ctx, key, []byte("x"), "image/jpeg")
		require.NoError(t, err)
	}

	infos, err := lister.ListKeys(ctx, "avatars/")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "avatars/a.jpg", infos[0].Key)
	assert.Equal(t, int64(1), infos[0].Size)
	assert.WithinDuration(t, time.Now(), infos[0].LastModified, time.Minute)

	all, err := lister.ListKeys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPresignPut(t *testing.T) {
	client := setupMinio(t)
	ctx := context.Background()

	presigner := NewPresigner(client.MinioClient, BucketName)
	reader := NewReader(client.MinioClient, &ReaderConfig{Timeout: 30000, Bucket: BucketName})

	url, err := presigner.PresignPut(ctx, "staging/presigned.jpg", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "staging/presigned.jpg")

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader([]byte("uploaded")))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, _, err := reader.Read(ctx, "staging/presigned.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("uploaded"), data)
}
