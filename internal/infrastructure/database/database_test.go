package database

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
	dbRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/database"
)

const TestDBName = "testdb"

// setupMongo starts a single-node replica set; the writer's multi-document
// transactions require one.
func setupMongo(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:latest",
		ExposedPorts: []string{"27017/tcp"},
		Cmd:          []string{"mongod", "--replSet", "rs0", "--bind_ip_all"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatal("Failed to start MongoDB container:", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal("Failed to get container host:", err)
	}

	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		t.Fatal("Failed to get mapped port:", err)
	}

	hostPort := net.JoinHostPort(host, port.Port())
	uri := fmt.Sprintf("mongodb://%s/?directConnection=true", hostPort)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatal("Failed to create MongoDB client:", err)
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	initiate := bson.D{
		{Key: "replSetInitiate", Value: bson.D{
			{Key: "_id", Value: "rs0"},
			{Key: "members", Value: bson.A{
				bson.D{{Key: "_id", Value: 0}, {Key: "host", Value: "localhost:27017"}},
			}},
		}},
	}
	if err := client.Database("admin").RunCommand(ctx, initiate).Err(); err != nil {
		t.Fatal("Failed to initiate replica set:", err)
	}

	// Wait for the node to become primary.
	deadline := time.Now().Add(30 * time.Second)
	for {
		var status bson.M
		err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&status)
		if err == nil {
			if writable, ok := status["isWritablePrimary"].(bool); ok && writable {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatal("Replica set never elected a primary")
		}
		time.Sleep(200 * time.Millisecond)
	}

	return uri
}

func connect(t *testing.T, uri string) *Database {
	t.Helper()

	db, err := Connect(Config{
		URI:               uri,
		DBName:            TestDBName,
		ConnectionTimeout: 30000,
		QueryTimeout:      30000,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Stop()
	})

	return db
}

func basePhoto(id string) *model.Photo {
	now := time.Now().UTC().Truncate(time.Millisecond)

	return &model.Photo{
		ID:               id,
		OwnerID:          "user-1",
		PhotoType:        "gallery",
		Purpose:          "personal",
		StorageKey:       "gallery/" + id + ".jpg",
		ThumbnailKey:     "thumbs/gallery/" + id + ".jpg",
		URL:              "http://cdn.example/gallery/" + id + ".jpg",
		ThumbnailURL:     "http://cdn.example/thumbs/gallery/" + id + ".jpg",
		OriginalSize:     4096,
		TransformedSize:  2048,
		Dimensions:       model.Dimensions{Width: 800, Height: 600},
		MIMEType:         "image/jpeg",
		ModerationStatus: model.ModerationApproved,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestCreatePhoto(t *testing.T) {
	uri := setupMongo(t)
	db := connect(t, uri)
	ctx := context.Background()

	writer := NewPhotoWriter(db, 1<<20)

	require.NoError(t, writer.CreatePhoto(ctx, basePhoto("photo-1")))

	t.Run("schema validation rejects missing owner", func(t *testing.T) {
		photo := basePhoto("photo-2")
		photo.OwnerID = ""

		err := writer.CreatePhoto(ctx, photo)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Document failed validation")
	})

	t.Run("schema validation rejects unknown moderation status", func(t *testing.T) {
		photo := basePhoto("photo-3")
		photo.ModerationStatus = "maybe"

		err := writer.CreatePhoto(ctx, photo)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Document failed validation")
	})

	t.Run("quota enforced at write time", func(t *testing.T) {
		tight := NewPhotoWriter(db, 2048)

		err := tight.CreatePhoto(ctx, basePhoto("photo-4"))
		assert.ErrorIs(t, err, dbRepo.ErrQuotaExceeded)
	})
}

func TestQuotaRecheckAtWriteTime(t *testing.T) {
	uri := setupMongo(t)
	db := connect(t, uri)
	ctx := context.Background()

	// Each photo is 2048 bytes, the quota allows 3000: either upload fits on
	// its own, together they exceed it. The optimistic guard read happens
	// before persistence, so both uploads can reach the writer believing
	// they fit; the write-time re-check must let at most one through.
	writer := NewPhotoWriter(db, 3000)

	first := basePhoto("photo-1")
	second := basePhoto("photo-2")

	errFirst := writer.CreatePhoto(ctx, first)
	errSecond := writer.CreatePhoto(ctx, second)

	require.NoError(t, errFirst)
	assert.ErrorIs(t, errSecond, dbRepo.ErrQuotaExceeded)

	t.Run("transactional path re-checks too", func(t *testing.T) {
		third := basePhoto("photo-3")
		third.PostID = "post-1"
		link := &model.PostPhotoLink{
			ID:           "link-1",
			PostID:       "post-1",
			PhotoID:      third.ID,
			DisplayOrder: 1,
			CreatedAt:    time.Now().UTC(),
		}

		err := writer.CreatePhotoWithLink(ctx, third, link)
		assert.ErrorIs(t, err, dbRepo.ErrQuotaExceeded)

		retriever := NewPhotoRetriever(db)
		_, err = retriever.GetByID(ctx, "photo-3")
		assert.ErrorIs(t, err, dbRepo.ErrNotFound)
	})
}

func TestCreatePhotoWithLink(t *testing.T) {
	uri := setupMongo(t)
	db := connect(t, uri)
	ctx := context.Background()

	writer := NewPhotoWriter(db, 1<<20)
	retriever := NewPhotoRetriever(db)

	photo := basePhoto("photo-1")
	photo.PostID = "post-1"
	link := &model.PostPhotoLink{
		ID:           "link-1",
		PostID:       "post-1",
		PhotoID:      photo.ID,
		DisplayOrder: 1,
		CreatedAt:    time.Now().UTC(),
	}

	require.NoError(t, writer.CreatePhotoWithLink(ctx, photo, link))

	t.Run("duplicate pair rolls back the photo", func(t *testing.T) {
		second := basePhoto("photo-2")
		second.PostID = "post-1"
		dup := &model.PostPhotoLink{
			ID:           "link-2",
			PostID:       "post-1",
			PhotoID:      photo.ID, // same pair as link-1
			DisplayOrder: 2,
			CreatedAt:    time.Now().UTC(),
		}

		err := writer.CreatePhotoWithLink(ctx, second, dup)
		assert.ErrorIs(t, err, dbRepo.ErrDuplicateLink)

		// The photo insert preceded the failed link insert inside the
		// transaction; neither row may be visible afterward.
		_, err = retriever.GetByID(ctx, "photo-2")
		assert.ErrorIs(t, err, dbRepo.ErrNotFound)

		total, err := retriever.TotalActiveBytes(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, photo.TransformedSize, total)
	})
}

func TestAttachToPost(t *testing.T) {
	uri := setupMongo(t)
	db := connect(t, uri)
	ctx := context.Background()

	writer := NewPhotoWriter(db, 1<<20)
	retriever := NewPhotoRetriever(db)

	require.NoError(t, writer.CreatePhoto(ctx, basePhoto("photo-1")))

	require.NoError(t, writer.AttachToPost(ctx, "photo-1", "post-1", 1))

	photo, err := retriever.GetByID(ctx, "photo-1")
	require.NoError(t, err)
	assert.Equal(t, "post-1", photo.PostID)

	t.Run("unknown photo", func(t *testing.T) {
		err := writer.AttachToPost(ctx, "missing", "post-1", 1)
		assert.ErrorIs(t, err, dbRepo.ErrNotFound)
	})

	t.Run("same pair again", func(t *testing.T) {
		err := writer.AttachToPost(ctx, "photo-1", "post-1", 1)
		assert.ErrorIs(t, err, dbRepo.ErrDuplicateLink)
	})
}

func TestRetrieverAndRemover(t *testing.T) {
	uri := setupMongo(t)
	db := connect(t, uri)
	ctx := context.Background()

	writer := NewPhotoWriter(db, 1<<20)
	retriever := NewPhotoRetriever(db)
	remover := NewPhotoRemover(db)

	require.NoError(t, writer.CreatePhoto(ctx, basePhoto("photo-1")))
	require.NoError(t, writer.CreatePhoto(ctx, basePhoto("photo-2")))

	photo, err := retriever.GetByID(ctx, "photo-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", photo.OwnerID)

	total, err := retriever.TotalActiveBytes(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4096), total)

	t.Run("soft delete hides the record", func(t *testing.T) {
		require.NoError(t, remover.SoftDelete(ctx, "photo-1", "user-1"))

		_, err := retriever.GetByID(ctx, "photo-1")
		assert.ErrorIs(t, err, dbRepo.ErrNotFound)

		total, err := retriever.TotalActiveBytes(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(2048), total)
	})

	t.Run("delete by non-owner fails", func(t *testing.T) {
		err := remover.SoftDelete(ctx, "photo-2", "user-2")
		assert.ErrorIs(t, err, dbRepo.ErrNotFound)
	})

	t.Run("double delete fails", func(t *testing.T) {
		err := remover.SoftDelete(ctx, "photo-1", "user-1")
		assert.ErrorIs(t, err, dbRepo.ErrNotFound)
	})
}

func TestLister(t *testing.T) {
	uri := setupMongo(t)
	db := connect(t, uri)
	ctx := context.Background()

	writer := NewPhotoWriter(db, 1<<20)
	remover := NewPhotoRemover(db)
	lister := NewPhotoLister(db)

	first := basePhoto("photo-1")
	second := basePhoto("photo-2")
	second.CreatedAt = second.CreatedAt.Add(time.Second)
	require.NoError(t, writer.CreatePhoto(ctx, first))
	require.NoError(t, writer.CreatePhoto(ctx, second))

	keys, err := lister.ActiveStorageKeys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 4)
	assert.Contains(t, keys, "gallery/photo-1.jpg")
	assert.Contains(t, keys, "thumbs/gallery/photo-2.jpg")

	photos, err := lister.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "photo-2", photos[0].ID) // newest first

	t.Run("deleted photos drop out", func(t *testing.T) {
		require.NoError(t, remover.SoftDelete(ctx, "photo-1", "user-1"))

		keys, err := lister.ActiveStorageKeys(ctx)
		require.NoError(t, err)
		assert.Len(t, keys, 2)

		photos, err := lister.ListByOwner(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, photos, 1)
	})
}
