package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
)

type PhotoLister struct {
	db *Database
}

func NewPhotoLister(db *Database) *PhotoLister {
	return &PhotoLister{db: db}
}

func (l *PhotoLister) ActiveStorageKeys(ctx context.Context) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, l.db.QueryTimeout)
	defer cancel()

	coll := l.db.Client.Database(l.db.DBName).Collection(PhotoCollection)

	opts := options.Find().SetProjection(bson.M{"storage_key": 1, "thumbnail_key": 1})
	cursor, err := coll.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	keys := make(map[string]struct{})
	for cursor.Next(ctx) {
		var doc struct {
			StorageKey   string `bson:"storage_key"`
			ThumbnailKey string `bson:"thumbnail_key"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}

		if doc.StorageKey != "" {
			keys[doc.StorageKey] = struct{}{}
		}
		if doc.ThumbnailKey != "" {
			keys[doc.ThumbnailKey] = struct{}{}
		}
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

func (l *PhotoLister) ListByOwner(ctx context.Context, ownerID string) ([]model.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, l.db.QueryTimeout)
	defer cancel()

	coll := l.db.Client.Database(l.db.DBName).Collection(PhotoCollection)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{"owner_id": ownerID, "active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var photos []model.Photo
	if err := cursor.All(ctx, &photos); err != nil {
		return nil, err
	}

	return photos, nil
}
