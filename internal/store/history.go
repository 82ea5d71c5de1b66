package store

import (
	"context"
	"time"

	"github.com/its-platform/apiserver/internal/db"
	"github.com/its-platform/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HistoryRepository handles persistence for content-history snapshots.
type HistoryRepository struct {
	coll *mongo.Collection
	now  clock
}

func NewHistoryRepository(database *mongo.Database) *HistoryRepository {
	return &HistoryRepository{
		coll: database.Collection(db.CollectionHistory),
		now:  time.Now,
	}
}

func (r *HistoryRepository) Create(ctx context.Context, history types.ContentHistory) (types.ContentHistory, error) {
	history.ID = newDocumentID()
	history.ChangeDate = r.now()

	if _, err := r.coll.InsertOne(ctx, history); err != nil {
		return types.ContentHistory{}, translateWriteError(err)
	}
	return history, nil
}

// ListByMaterialIDDesc returns a material's snapshots newest version
// first; the head row mirrors the live material state.
func (r *HistoryRepository) ListByMaterialIDDesc(ctx context.Context, materialID string) ([]types.ContentHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	return findAll[types.ContentHistory](ctx, r.coll, bson.M{"materialId": materialID}, opts)
}

func (r *HistoryRepository) ListByChangedBy(ctx context.Context, userID string) ([]types.ContentHistory, error) {
	return findAll[types.ContentHistory](ctx, r.coll, bson.M{"changedBy": userID})
}
