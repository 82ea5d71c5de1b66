package db

import (
	"context"
	"time"

	"github.com/its-platform/apiserver/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultPingTimeout = 5 * time.Second

// Collection names of the five persisted entity sets.
const (
	CollectionUsers     = "users"
	CollectionCourses   = "courses"
	CollectionTopics    = "topics"
	CollectionMaterials = "learning_materials"
	CollectionHistory   = "content_history"
)

// Open connects to the document store and verifies the connection.
func Open(ctx context.Context, cfg config.Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetMaxPoolSize(cfg.Mongo.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client.Database(cfg.Mongo.Database), nil
}

// Close disconnects the client backing the database handle.
func Close(ctx context.Context, database *mongo.Database) error {
	if database == nil {
		return nil
	}
	return database.Client().Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on.
// Creation is idempotent; registration races on users.email resolve
// through the unique index here.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		CollectionCourses: {
			{Keys: bson.D{{Key: "title", Value: 1}}},
			{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		},
		CollectionTopics: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "courseId", Value: 1}}},
		},
		CollectionMaterials: {
			{Keys: bson.D{{Key: "title", Value: 1}}},
			{Keys: bson.D{{Key: "topicId", Value: 1}}},
			{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		},
		CollectionHistory: {
			{Keys: bson.D{{Key: "materialId", Value: 1}, {Key: "version", Value: -1}}},
			{Keys: bson.D{{Key: "changedBy", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
