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

// MaterialRepository handles persistence for learning materials.
type MaterialRepository struct {
	coll *mongo.Collection
	now  clock
}

func NewMaterialRepository(database *mongo.Database) *MaterialRepository {
	return &MaterialRepository{
		coll: database.Collection(db.CollectionMaterials),
		now:  time.Now,
	}
}

func (r *MaterialRepository) GetByID(ctx context.Context, id string) (types.LearningMaterial, error) {
	var material types.LearningMaterial
	err := r.coll.FindOne(ctx, byID(id)).Decode(&material)
	if err != nil {
		return types.LearningMaterial{}, translateFindError(err)
	}
	return material, nil
}

func (r *MaterialRepository) List(ctx context.Context) ([]types.LearningMaterial, error) {
	return findAll[types.LearningMaterial](ctx, r.coll, bson.M{})
}

// ListPublishedByTopicID returns only published materials; unpublished
// entries are excluded from topic-scoped listings.
func (r *MaterialRepository) ListPublishedByTopicID(ctx context.Context, topicID string) ([]types.LearningMaterial, error) {
	return findAll[types.LearningMaterial](ctx, r.coll, bson.M{"topicId": topicID, "published": true})
}

func (r *MaterialRepository) ListByCreatedBy(ctx context.Context, userID string) ([]types.LearningMaterial, error) {
	return findAll[types.LearningMaterial](ctx, r.coll, bson.M{"createdBy": userID})
}

func (r *MaterialRepository) ListByType(ctx context.Context, contentType types.ContentType) ([]types.LearningMaterial, error) {
	return findAll[types.LearningMaterial](ctx, r.coll, bson.M{"type": contentType})
}

// SearchByTitle is a case-insensitive substring search over titles.
// An empty query returns every material.
func (r *MaterialRepository) SearchByTitle(ctx context.Context, query string) ([]types.LearningMaterial, error) {
	return findAll[types.LearningMaterial](ctx, r.coll, titleRegex("title", query))
}

// Create inserts the material with version counter 1.
func (r *MaterialRepository) Create(ctx context.Context, material types.LearningMaterial) (types.LearningMaterial, error) {
	now := r.now()
	material.ID = newDocumentID()
	material.Version = 1
	material.CreatedDate = now
	material.LastModifiedDate = now

	if _, err := r.coll.InsertOne(ctx, material); err != nil {
		return types.LearningMaterial{}, translateWriteError(err)
	}
	return material, nil
}

// ApplyUpdate overwrites the mutable fields of a material and
// advances its embedded version counter in one atomic operation.
// Two racing updates therefore receive distinct consecutive versions,
// keeping the history range contiguous.
func (r *MaterialRepository) ApplyUpdate(ctx context.Context, id string, upd types.MaterialUpdate) (types.LearningMaterial, error) {
	set := bson.M{
		"title":            upd.Title,
		"content":          upd.Content,
		"published":        upd.Published,
		"lastModifiedDate": r.now(),
	}
	if upd.Format != "" {
		set["format"] = upd.Format
	}
	if upd.Difficulty != "" {
		set["difficulty"] = upd.Difficulty
	}
	if upd.Tags != nil {
		set["tags"] = upd.Tags
	}

	update := bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var material types.LearningMaterial
	err := r.coll.FindOneAndUpdate(ctx, byID(id), update, opts).Decode(&material)
	if err != nil {
		return types.LearningMaterial{}, translateFindError(err)
	}
	return material, nil
}

// Delete removes the material row. History rows are not cascaded.
func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
