package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/techstore3d/backend/internal/core/domain/user"
	"github.com/techstore3d/backend/internal/core/ports"
	"github.com/techstore3d/backend/internal/infrastructure/db"
)

type UserRepository struct {
	col    *mongo.Collection
	logger *logrus.Logger
}

func NewUserRepository(database *db.Database, logger *logrus.Logger) ports.UserRepository {
	return &UserRepository{col: database.Collection("users"), logger: logger}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.ErrEmailTaken
		}
		r.logger.WithField("user_id", u.ID).WithError(err).Error("db: failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, query bson.M) (*user.User, error) {
	var u user.User
	err := r.col.FindOne(ctx, query).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNotFound
		}
		r.logger.WithError(err).Error("db: failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// AddFavorite uses $addToSet so repeated adds of the same product are a
// no-op rather than duplicates.
func (r *UserRepository) AddFavorite(ctx context.Context, userID, productID string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": userID},
		bson.M{"$addToSet": bson.M{"favorites": productID}})
	if err != nil {
		r.logger.WithField("user_id", userID).WithError(err).Error("db: failed to add favorite")
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	if res.MatchedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, productID string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": userID},
		bson.M{"$pull": bson.M{"favorites": productID}})
	if err != nil {
		r.logger.WithField("user_id", userID).WithError(err).Error("db: failed to remove favorite")
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if res.MatchedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
