package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/techstore3d/backend/internal/core/domain/review"
	"github.com/techstore3d/backend/internal/core/ports"
)

type ReviewService struct {
	reviews  ports.ReviewRepository
	products ports.ProductRepository
	logger   *logrus.Logger
}

func NewReviewService(reviews ports.ReviewRepository, products ports.ProductRepository, logger *logrus.Logger) ports.ReviewService {
	return &ReviewService{reviews: reviews, products: products, logger: logger}
}

func (s *ReviewService) CreateReview(ctx context.Context, req *review.CreateRequest) (*review.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	existing, err := s.reviews.GetByProductAndUser(ctx, req.ProductID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, review.ErrDuplicate
	}
	rev := review.New(req)
	if err := s.reviews.Create(ctx, rev); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"product_id": rev.ProductID,
		"rating":     rev.Rating,
	}).Info("review created")
	return rev, nil
}

func (s *ReviewService) ListProductReviews(ctx context.Context, productID string, limit int) ([]*review.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.reviews.ListByProduct(ctx, productID, limit)
}

func (s *ReviewService) GetProductReviewStats(ctx context.Context, productID string) (*review.Stats, error) {
	return s.reviews.Stats(ctx, productID)
}
