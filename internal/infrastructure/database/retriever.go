package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
	dbRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/database"
)

type PhotoRetriever struct {
	db *Database
}

func NewPhotoRetriever(db *Database) *PhotoRetriever {
	return &PhotoRetriever{db: db}
}

func (r *PhotoRetriever) GetByID(ctx context.Context, id string) (*model.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	coll := r.db.Client.Database(r.db.DBName).Collection(PhotoCollection)

	var photo model.Photo
	err := coll.FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(&photo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dbRepo.ErrNotFound
		}

		return nil, err
	}

	return &photo, nil
}

func (r *PhotoRetriever) TotalActiveBytes(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	return totalActiveBytes(ctx, r.db, ownerID)
}
