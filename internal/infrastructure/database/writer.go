package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
	dbRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/database"
)

// PhotoWriter persists photo records and post links. The quota re-check
// before every insert is what closes the check-then-act race left open by
// the guard stage's optimistic read.
type PhotoWriter struct {
	db         *Database
	quotaBytes int64
}

func NewPhotoWriter(db *Database, quotaBytes int64) *PhotoWriter {
	return &PhotoWriter{db: db, quotaBytes: quotaBytes}
}

func (w *PhotoWriter) CreatePhoto(ctx context.Context, photo *model.Photo) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	if err := w.checkQuota(ctx, photo.OwnerID, photo.TransformedSize); err != nil {
		return err
	}

	coll := w.db.Client.Database(w.db.DBName).Collection(PhotoCollection)
	if _, err := coll.InsertOne(ctx, photo); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dbRepo.ErrDuplicateLink
		}

		return fmt.Errorf("insert photo: %w", err)
	}

	return nil
}

// CreatePhotoWithLink runs the photo insert and the link insert in one
// transaction so no half-created state is ever observable.
func (w *PhotoWriter) CreatePhotoWithLink(ctx context.Context, photo *model.Photo, link *model.PostPhotoLink) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	session, err := w.db.Client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		if err := w.checkQuota(sc, photo.OwnerID, photo.TransformedSize); err != nil {
			return nil, err
		}

		photos := w.db.Client.Database(w.db.DBName).Collection(PhotoCollection)
		if _, err := photos.InsertOne(sc, photo); err != nil {
			return nil, fmt.Errorf("insert photo: %w", err)
		}

		links := w.db.Client.Database(w.db.DBName).Collection(PostPhotoCollection)
		if _, err := links.InsertOne(sc, link); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, dbRepo.ErrDuplicateLink
			}

			return nil, fmt.Errorf("insert post link: %w", err)
		}

		return nil, nil
	})

	return err
}

// AttachToPost links an existing photo to a post after creation time.
func (w *PhotoWriter) AttachToPost(ctx context.Context, photoID, postID string, displayOrder int) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	session, err := w.db.Client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		links := w.db.Client.Database(w.db.DBName).Collection(PostPhotoCollection)
		link := &model.PostPhotoLink{
			ID:           fmt.Sprintf("%s:%s", postID, photoID),
			PostID:       postID,
			PhotoID:      photoID,
			DisplayOrder: displayOrder,
			CreatedAt:    time.Now().UTC(),
		}
		if _, err := links.InsertOne(sc, link); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, dbRepo.ErrDuplicateLink
			}

			return nil, fmt.Errorf("insert post link: %w", err)
		}

		photos := w.db.Client.Database(w.db.DBName).Collection(PhotoCollection)
		res, err := photos.UpdateOne(sc,
			bson.M{"_id": photoID, "active": true},
			bson.M{"$set": bson.M{"post_id": postID, "updated_at": time.Now().UTC()}})
		if err != nil {
			return nil, fmt.Errorf("update photo: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, dbRepo.ErrNotFound
		}

		return nil, nil
	})

	return err
}

func (w *PhotoWriter) checkQuota(ctx context.Context, ownerID string, size int64) error {
	used, err := totalActiveBytes(ctx, w.db, ownerID)
	if err != nil {
		return fmt.Errorf("quota re-check: %w", err)
	}
	if used+size > w.quotaBytes {
		return dbRepo.ErrQuotaExceeded
	}

	return nil
}

// totalActiveBytes sums transformed sizes of the owner's active photos.
// Shared by the writer's re-check and the retriever's optimistic read.
func totalActiveBytes(ctx context.Context, db *Database, ownerID string) (int64, error) {
	coll := db.Client.Database(db.DBName).Collection(PhotoCollection)

	cursor, err := coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner_id": ownerID, "active": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$transformed_size"},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}

	return results[0].Total, nil
}
