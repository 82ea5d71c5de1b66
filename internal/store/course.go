package store

import (
	"context"
	"time"

	"github.com/its-platform/apiserver/internal/db"
	"github.com/its-platform/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CourseRepository handles persistence for courses.
type CourseRepository struct {
	coll *mongo.Collection
	now  clock
}

func NewCourseRepository(database *mongo.Database) *CourseRepository {
	return &CourseRepository{
		coll: database.Collection(db.CollectionCourses),
		now:  time.Now,
	}
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (types.Course, error) {
	var course types.Course
	err := r.coll.FindOne(ctx, byID(id)).Decode(&course)
	if err != nil {
		return types.Course{}, translateFindError(err)
	}
	return course, nil
}

func (r *CourseRepository) List(ctx context.Context) ([]types.Course, error) {
	return findAll[types.Course](ctx, r.coll, bson.M{})
}

func (r *CourseRepository) ListByCreatedBy(ctx context.Context, userID string) ([]types.Course, error) {
	return findAll[types.Course](ctx, r.coll, bson.M{"createdBy": userID})
}

func (r *CourseRepository) ListBySubject(ctx context.Context, subject string) ([]types.Course, error) {
	return findAll[types.Course](ctx, r.coll, bson.M{"subject": subject})
}

func (r *CourseRepository) ListByDifficulty(ctx context.Context, level types.DifficultyLevel) ([]types.Course, error) {
	return findAll[types.Course](ctx, r.coll, bson.M{"difficulty": level})
}

func (r *CourseRepository) ListPublished(ctx context.Context) ([]types.Course, error) {
	return findAll[types.Course](ctx, r.coll, bson.M{"published": true})
}

// ListPublishedBySubjectAndDifficulty narrows the published set by
// both subject and difficulty.
func (r *CourseRepository) ListPublishedBySubjectAndDifficulty(ctx context.Context, subject string, level types.DifficultyLevel) ([]types.Course, error) {
	return findAll[types.Course](ctx, r.coll, bson.M{
		"subject":    subject,
		"difficulty": level,
		"published":  true,
	})
}

// SearchByTitle is a case-insensitive substring search over titles.
func (r *CourseRepository) SearchByTitle(ctx context.Context, query string) ([]types.Course, error) {
	return findAll[types.Course](ctx, r.coll, titleRegex("title", query))
}

func (r *CourseRepository) Create(ctx context.Context, course types.Course) (types.Course, error) {
	now := r.now()
	course.ID = newDocumentID()
	course.CreatedDate = now
	course.LastModifiedDate = now

	if _, err := r.coll.InsertOne(ctx, course); err != nil {
		return types.Course{}, translateWriteError(err)
	}
	return course, nil
}

func (r *CourseRepository) Update(ctx context.Context, course types.Course) (types.Course, error) {
	course.LastModifiedDate = r.now()

	result, err := r.coll.ReplaceOne(ctx, byID(course.ID), course)
	if err != nil {
		return types.Course{}, translateWriteError(err)
	}
	if result.MatchedCount == 0 {
		return types.Course{}, ErrNotFound
	}
	return course, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
