package repositories

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/techstore3d/backend/internal/core/domain/status"
	"github.com/techstore3d/backend/internal/core/ports"
	"github.com/techstore3d/backend/internal/infrastructure/db"
)

type StatusRepository struct {
	col    *mongo.Collection
	logger *logrus.Logger
}

func NewStatusRepository(database *db.Database, logger *logrus.Logger) ports.StatusRepository {
	return &StatusRepository{col: database.Collection("status_checks"), logger: logger}
}

func (r *StatusRepository) Create(ctx context.Context, c *status.Check) error {
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		r.logger.WithError(err).Error("db: failed to create status check")
		return fmt.Errorf("failed to create status check: %w", err)
	}
	return nil
}

func (r *StatusRepository) List(ctx context.Context, limit int) ([]*status.Check, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list status checks: %w", err)
	}
	checks := []*status.Check{}
	if err := cur.All(ctx, &checks); err != nil {
		return nil, fmt.Errorf("failed to decode status checks: %w", err)
	}
	return checks, nil
}
