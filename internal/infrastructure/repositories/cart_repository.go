package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/techstore3d/backend/internal/core/domain/cart"
	"github.com/techstore3d/backend/internal/core/ports"
	"github.com/techstore3d/backend/internal/infrastructure/db"
)

type CartRepository struct {
	col    *mongo.Collection
	logger *logrus.Logger
}

func NewCartRepository(database *db.Database, logger *logrus.Logger) ports.CartRepository {
	return &CartRepository{col: database.Collection("carts"), logger: logger}
}

func (r *CartRepository) Create(ctx context.Context, c *cart.Cart) error {
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		r.logger.WithField("session_id", c.SessionID).WithError(err).Error("db: failed to create cart")
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

func (r *CartRepository) GetBySession(ctx context.Context, sessionID string) (*cart.Cart, error) {
	var c cart.Cart
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cart.ErrNotFound
		}
		r.logger.WithField("session_id", sessionID).WithError(err).Error("db: failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &c, nil
}

// Update replaces the cart document; the item list is small enough that a
// full rewrite beats per-item update operators.
func (r *CartRepository) Update(ctx context.Context, c *cart.Cart) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"session_id": c.SessionID}, c)
	if err != nil {
		r.logger.WithField("session_id", c.SessionID).WithError(err).Error("db: failed to update cart")
		return fmt.Errorf("failed to update cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return cart.ErrNotFound
	}
	return nil
}

func (r *CartRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count carts: %w", err)
	}
	return count, nil
}
