package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PhotoCollection     = "photo"
	PostPhotoCollection = "post_photo"
)

type Config struct {
	URI               string
	DBName            string `yaml:"db_name"`
	ConnectionTimeout int64  `yaml:"connection_timeout_in_ms"`
	QueryTimeout      int64  `yaml:"query_timeout_in_ms"`
}

type Database struct {
	DBName       string
	QueryTimeout time.Duration
	Client       *mongo.Client
}

func Connect(cfg Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectionTimeout)*time.Millisecond)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(time.Duration(cfg.ConnectionTimeout) * time.Millisecond)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	qCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.QueryTimeout)*time.Millisecond)
	defer cancel()

	if err := client.Ping(qCtx, nil); err != nil {
		return nil, err
	}

	db := &Database{
		Client:       client,
		DBName:       cfg.DBName,
		QueryTimeout: time.Duration(cfg.QueryTimeout) * time.Millisecond,
	}

	if err := initPhotoCollection(db); err != nil {
		return nil, err
	}
	if err := initPostPhotoCollection(db); err != nil {
		return nil, err
	}

	return db, nil
}

func initPhotoCollection(db *Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), db.QueryTimeout)
	defer cancel()

	collections, err := db.Client.Database(db.DBName).ListCollectionNames(ctx, bson.M{"name": PhotoCollection})
	if err != nil {
		return err
	}
	if len(collections) > 0 {
		return nil // already exists
	}

	collOpts := options.CreateCollection().SetValidator(bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{
				"_id", "owner_id", "photo_type", "storage_key", "thumbnail_key",
				"moderation_status", "active", "created_at",
			},
			"properties": bson.M{
				"_id":           bson.M{"bsonType": "string"},
				"owner_id":      bson.M{"bsonType": "string", "minLength": 1},
				"photo_type":    bson.M{"bsonType": "string"},
				"storage_key":   bson.M{"bsonType": "string", "minLength": 1},
				"thumbnail_key": bson.M{"bsonType": "string", "minLength": 1},
				"moderation_status": bson.M{
					"enum": []string{"pending", "approved", "rejected", "needs_review"},
				},
				"original_size":    bson.M{"bsonType": []string{"long", "int"}},
				"transformed_size": bson.M{"bsonType": []string{"long", "int"}},
				"dimensions": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"width":  bson.M{"bsonType": "int"},
						"height": bson.M{"bsonType": "int"},
					},
				},
				"active":     bson.M{"bsonType": "bool"},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	})

	if err := db.Client.Database(db.DBName).CreateCollection(ctx, PhotoCollection, collOpts); err != nil {
		return err
	}

	coll := db.Client.Database(db.DBName).Collection(PhotoCollection)
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "active", Value: 1}}},
		{Keys: bson.D{{Key: "storage_key", Value: 1}}},
	})

	return err
}

func initPostPhotoCollection(db *Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), db.QueryTimeout)
	defer cancel()

	collections, err := db.Client.Database(db.DBName).ListCollectionNames(ctx, bson.M{"name": PostPhotoCollection})
	if err != nil {
		return err
	}
	if len(collections) > 0 {
		return nil
	}

	collOpts := options.CreateCollection().SetValidator(bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"_id", "post_id", "photo_id", "display_order"},
			"properties": bson.M{
				"_id":           bson.M{"bsonType": "string"},
				"post_id":       bson.M{"bsonType": "string", "minLength": 1},
				"photo_id":      bson.M{"bsonType": "string", "minLength": 1},
				"display_order": bson.M{"bsonType": "int", "minimum": 1},
			},
		},
	})

	if err := db.Client.Database(db.DBName).CreateCollection(ctx, PostPhotoCollection, collOpts); err != nil {
		return err
	}

	coll := db.Client.Database(db.DBName).Collection(PostPhotoCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "photo_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return err
}

func (db *Database) Stop() error {
	if err := db.Client.Disconnect(context.Background()); err != nil {
		return err
	}

	return nil
}
