package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/techstore3d/backend/internal/core/domain/product"
	"github.com/techstore3d/backend/internal/core/domain/user"
	"github.com/techstore3d/backend/internal/core/ports"
)

type UserService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	logger   *logrus.Logger
}

func NewUserService(users ports.UserRepository, products ports.ProductRepository, logger *logrus.Logger) ports.UserService {
	return &UserService{users: users, products: products, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, req *user.CreateRequest) (*user.User, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}
	u := user.New(req)
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("user created")
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) AddFavorite(ctx context.Context, userID, productID string) error {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.users.AddFavorite(ctx, userID, productID)
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID, productID string) error {
	return s.users.RemoveFavorite(ctx, userID, productID)
}

// ListFavorites resolves the user's favorite product IDs to full products.
// Products deleted since they were favorited are silently skipped.
func (s *UserService) ListFavorites(ctx context.Context, userID string) ([]*product.Product, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.products.GetByIDs(ctx, u.Favorites)
}
