package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/techstore3d/backend/internal/core/domain/review"
	"github.com/techstore3d/backend/internal/core/ports"
	"github.com/techstore3d/backend/internal/infrastructure/db"
)

type ReviewRepository struct {
	col    *mongo.Collection
	logger *logrus.Logger
}

func NewReviewRepository(database *db.Database, logger *logrus.Logger) ports.ReviewRepository {
	return &ReviewRepository{col: database.Collection("reviews"), logger: logger}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	if _, err := r.col.InsertOne(ctx, rev); err != nil {
		r.logger.WithField("product_id", rev.ProductID).WithError(err).Error("db: failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) GetByProductAndUser(ctx context.Context, productID, userID string) (*review.Review, error) {
	var rev review.Review
	err := r.col.FindOne(ctx, bson.M{"product_id": productID, "user_id": userID}).Decode(&rev)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up review: %w", err)
	}
	return &rev, nil
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string, limit int) ([]*review.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		r.logger.WithField("product_id", productID).WithError(err).Error("db: failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	reviews := []*review.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// Stats computes count, average and per-star distribution in a single
// aggregation over the product's reviews.
func (r *ReviewRepository) Stats(ctx context.Context, productID string) (*review.Stats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"product_id": productID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"total":   bson.M{"$sum": 1},
			"average": bson.M{"$avg": "$rating"},
			"ratings": bson.M{"$push": "$rating"},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate review stats: %w", err)
	}
	var rows []struct {
		Total   int64   `bson:"total"`
		Average float64 `bson:"average"`
		Ratings []int   `bson:"ratings"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode review stats: %w", err)
	}
	if len(rows) == 0 {
		return review.EmptyStats(), nil
	}
	stats := review.EmptyStats()
	stats.TotalReviews = rows[0].Total
	stats.AverageRating = rows[0].Average
	for _, rating := range rows[0].Ratings {
		if rating >= 1 && rating <= 5 {
			stats.RatingDistribution[rating]++
		}
	}
	return stats, nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// GlobalAverageRating averages ratings across all products; 0 when there
// are no reviews yet.
func (r *ReviewRepository) GlobalAverageRating(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate global rating: %w", err)
	}
	var rows []struct {
		Average float64 `bson:"average"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode global rating: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Average, nil
}
