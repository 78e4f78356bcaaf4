package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	dbRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/database"
)

type PhotoRemover struct {
	db *Database
}

func NewPhotoRemover(db *Database) *PhotoRemover {
	return &PhotoRemover{db: db}
}

// SoftDelete marks a photo inactive. The record and the stored objects are
// kept; the reconciliation sweep decides what happens to the objects later.
func (r *PhotoRemover) SoftDelete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	coll := r.db.Client.Database(r.db.DBName).Collection(PhotoCollection)

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerID, "active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return dbRepo.ErrNotFound
	}

	return nil
}
