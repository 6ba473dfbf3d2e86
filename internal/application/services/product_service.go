package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/techstore3d/backend/internal/core/domain/product"
	"github.com/techstore3d/backend/internal/core/ports"
)

// ProductService implements the catalog use cases on top of the repositories.
type ProductService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	carts    ports.CartRepository
	reviews  ports.ReviewRepository
	logger   *logrus.Logger
}

func NewProductService(products ports.ProductRepository, users ports.UserRepository, carts ports.CartRepository, reviews ports.ReviewRepository, logger *logrus.Logger) ports.ProductService {
	return &ProductService{
		products: products,
		users:    users,
		carts:    carts,
		reviews:  reviews,
		logger:   logger,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *product.CreateRequest) (*product.Product, error) {
	p := product.New(req)
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"product_id": p.ID,
		"name":       p.Name,
	}).Info("product created")
	return p, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context, filter *product.Filter) ([]*product.Product, error) {
	if filter.Limit <= 0 || filter.Limit > product.DefaultListLimit {
		filter.Limit = product.DefaultListLimit
	}
	return s.products.List(ctx, filter)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *product.UpdateRequest) (*product.Product, error) {
	p, err := s.products.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("product_id", id).Info("product updated")
	return p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("product_id", id).Info("product deleted")
	return nil
}

func (s *ProductService) GetRecommendations(ctx context.Context, productID string, limit int) ([]*product.Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 4
	}
	return s.products.Recommendations(ctx, p, limit)
}

func (s *ProductService) GetTrending(ctx context.Context, limit int) ([]*product.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	return s.products.Trending(ctx, limit)
}

// GetDashboardStats fans out over the collections for the admin overview.
func (s *ProductService) GetDashboardStats(ctx context.Context) (*product.DashboardStats, error) {
	totalProducts, err := s.products.Count(ctx, false)
	if err != nil {
		return nil, err
	}
	featured, err := s.products.Count(ctx, true)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalCarts, err := s.carts.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalReviews, err := s.reviews.Count(ctx)
	if err != nil {
		return nil, err
	}
	avgRating, err := s.reviews.GlobalAverageRating(ctx)
	if err != nil {
		return nil, err
	}
	return &product.DashboardStats{
		TotalProducts:    totalProducts,
		FeaturedProducts: featured,
		TotalUsers:       totalUsers,
		TotalCarts:       totalCarts,
		TotalReviews:     totalReviews,
		AverageRating:    avgRating,
	}, nil
}
