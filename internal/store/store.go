// Package store implements typed repositories over the MongoDB
// collections backing the service. Each repository composes a
// collection handle and a clock; audit timestamps are set here so the
// tests can inject a deterministic time source.
package store

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newDocumentID produces a store-assigned identifier for an insert.
func newDocumentID() string {
	return primitive.NewObjectID().Hex()
}

// byID matches a document by its identifier.
func byID(id string) bson.M {
	return bson.M{"_id": id}
}

// titleRegex builds a case-insensitive substring filter on the given
// field. The query is quoted so regex metacharacters match literally;
// an empty query matches every document.
func titleRegex(field, query string) bson.M {
	return bson.M{field: bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

type clock func() time.Time
