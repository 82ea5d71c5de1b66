package store

import (
	"context"
	"time"

	"github.com/its-platform/apiserver/internal/db"
	"github.com/its-platform/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	coll *mongo.Collection
	now  clock
}

func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{
		coll: database.Collection(db.CollectionUsers),
		now:  time.Now,
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (types.User, error) {
	var user types.User
	err := r.coll.FindOne(ctx, byID(id)).Decode(&user)
	if err != nil {
		return types.User{}, translateFindError(err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	var user types.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return types.User{}, translateFindError(err)
	}
	return user, nil
}

// GetActiveByEmail looks up a user that is allowed to log in.
func (r *UserRepository) GetActiveByEmail(ctx context.Context, email string) (types.User, error) {
	var user types.User
	err := r.coll.FindOne(ctx, bson.M{"email": email, "active": true}).Decode(&user)
	if err != nil {
		return types.User{}, translateFindError(err)
	}
	return user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the user with a store-assigned id and fresh audit
// timestamps. A second registration with the same email surfaces as
// ErrDuplicateKey through the unique index on email.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	now := r.now()
	user.ID = newDocumentID()
	user.CreatedDate = now
	user.LastModifiedDate = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return types.User{}, translateWriteError(err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user types.User) (types.User, error) {
	user.LastModifiedDate = r.now()

	result, err := r.coll.ReplaceOne(ctx, byID(user.ID), user)
	if err != nil {
		return types.User{}, translateWriteError(err)
	}
	if result.MatchedCount == 0 {
		return types.User{}, ErrNotFound
	}
	return user, nil
}
