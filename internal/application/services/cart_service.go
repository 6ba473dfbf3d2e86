package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/techstore3d/backend/internal/core/domain/cart"
	"github.com/techstore3d/backend/internal/core/ports"
)

type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	logger   *logrus.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, logger *logrus.Logger) ports.CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// GetCart returns the session's cart, creating an empty one on first access.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := s.carts.GetBySession(ctx, sessionID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cart.ErrNotFound) {
		return nil, err
	}
	c = cart.New(sessionID)
	if err := s.carts.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.WithField("session_id", sessionID).Debug("cart created for session")
	return c, nil
}

func (s *CartService) AddItem(ctx context.Context, sessionID string, req *cart.AddItemRequest) (*cart.Cart, error) {
	// The product must exist before it goes in a cart.
	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	c, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.AddItem(req)
	if err := s.carts.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*cart.Cart, error) {
	c, err := s.carts.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.RemoveItem(itemID)
	if err := s.carts.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	c, err := s.carts.GetBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			return nil
		}
		return err
	}
	c.Clear()
	return s.carts.Update(ctx, c)
}
