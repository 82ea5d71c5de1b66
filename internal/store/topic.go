package store

import (
	"context"
	"time"

	"github.com/its-platform/apiserver/internal/db"
	"github.com/its-platform/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TopicRepository handles persistence for topics.
type TopicRepository struct {
	coll *mongo.Collection
	now  clock
}

func NewTopicRepository(database *mongo.Database) *TopicRepository {
	return &TopicRepository{
		coll: database.Collection(db.CollectionTopics),
		now:  time.Now,
	}
}

func (r *TopicRepository) GetByID(ctx context.Context, id string) (types.Topic, error) {
	var topic types.Topic
	err := r.coll.FindOne(ctx, byID(id)).Decode(&topic)
	if err != nil {
		return types.Topic{}, translateFindError(err)
	}
	return topic, nil
}

func (r *TopicRepository) List(ctx context.Context) ([]types.Topic, error) {
	return findAll[types.Topic](ctx, r.coll, bson.M{})
}

func (r *TopicRepository) ListByCourseID(ctx context.Context, courseID string) ([]types.Topic, error) {
	return findAll[types.Topic](ctx, r.coll, bson.M{"courseId": courseID})
}

// SearchByName is a case-insensitive substring search over names.
func (r *TopicRepository) SearchByName(ctx context.Context, query string) ([]types.Topic, error) {
	return findAll[types.Topic](ctx, r.coll, titleRegex("name", query))
}

func (r *TopicRepository) Create(ctx context.Context, topic types.Topic) (types.Topic, error) {
	now := r.now()
	topic.ID = newDocumentID()
	topic.CreatedDate = now
	topic.LastModifiedDate = now

	if _, err := r.coll.InsertOne(ctx, topic); err != nil {
		return types.Topic{}, translateWriteError(err)
	}
	return topic, nil
}

func (r *TopicRepository) Update(ctx context.Context, topic types.Topic) (types.Topic, error) {
	topic.LastModifiedDate = r.now()

	result, err := r.coll.ReplaceOne(ctx, byID(topic.ID), topic)
	if err != nil {
		return types.Topic{}, translateWriteError(err)
	}
	if result.MatchedCount == 0 {
		return types.Topic{}, ErrNotFound
	}
	return topic, nil
}

func (r *TopicRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
