package services_test

import (
	"context"

	"github.com/techstore3d/backend/internal/core/domain/cart"
	"github.com/techstore3d/backend/internal/core/domain/product"
	"github.com/techstore3d/backend/internal/core/domain/review"
	"github.com/techstore3d/backend/internal/core/domain/user"
)

type productRepoMock struct {
	createFn          func(ctx context.Context, p *product.Product) error
	getByIDFn         func(ctx context.Context, id string) (*product.Product, error)
	getByIDsFn        func(ctx context.Context, ids []string) ([]*product.Product, error)
	listFn            func(ctx context.Context, f *product.Filter) ([]*product.Product, error)
	updateFn          func(ctx context.Context, id string, req *product.UpdateRequest) (*product.Product, error)
	deleteFn          func(ctx context.Context, id string) error
	recommendationsFn func(ctx context.Context, p *product.Product, limit int) ([]*product.Product, error)
	trendingFn        func(ctx context.Context, limit int) ([]*product.Product, error)
	countFn           func(ctx context.Context, featuredOnly bool) (int64, error)
}

func (m *productRepoMock) Create(ctx context.Context, p *product.Product) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}
func (m *productRepoMock) GetByID(ctx context.Context, id string) (*product.Product, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, product.ErrNotFound
}
func (m *productRepoMock) GetByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return []*product.Product{}, nil
}
func (m *productRepoMock) List(ctx context.Context, f *product.Filter) ([]*product.Product, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return []*product.Product{}, nil
}
func (m *productRepoMock) Update(ctx context.Context, id string, req *product.UpdateRequest) (*product.Product, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return nil, product.ErrNotFound
}
func (m *productRepoMock) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
func (m *productRepoMock) Recommendations(ctx context.Context, p *product.Product, limit int) ([]*product.Product, error) {
	if m.recommendationsFn != nil {
		return m.recommendationsFn(ctx, p, limit)
	}
	return []*product.Product{}, nil
}
func (m *productRepoMock) Trending(ctx context.Context, limit int) ([]*product.Product, error) {
	if m.trendingFn != nil {
		return m.trendingFn(ctx, limit)
	}
	return []*product.Product{}, nil
}
func (m *productRepoMock) Count(ctx context.Context, featuredOnly bool) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, featuredOnly)
	}
	return 0, nil
}

type cartRepoMock struct {
	createFn       func(ctx context.Context, c *cart.Cart) error
	getBySessionFn func(ctx context.Context, sessionID string) (*cart.Cart, error)
	updateFn       func(ctx context.Context, c *cart.Cart) error
	countFn        func(ctx context.Context) (int64, error)
}

func (m *cartRepoMock) Create(ctx context.Context, c *cart.Cart) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}
func (m *cartRepoMock) GetBySession(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if m.getBySessionFn != nil {
		return m.getBySessionFn(ctx, sessionID)
	}
	return nil, cart.ErrNotFound
}
func (m *cartRepoMock) Update(ctx context.Context, c *cart.Cart) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, c)
	}
	return nil
}
func (m *cartRepoMock) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type userRepoMock struct {
	createFn         func(ctx context.Context, u *user.User) error
	getByIDFn        func(ctx context.Context, id string) (*user.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*user.User, error)
	addFavoriteFn    func(ctx context.Context, userID, productID string) error
	removeFavoriteFn func(ctx context.Context, userID, productID string) error
	countFn          func(ctx context.Context) (int64, error)
}

func (m *userRepoMock) Create(ctx context.Context, u *user.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	return nil
}
func (m *userRepoMock) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, user.ErrNotFound
}
func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, user.ErrNotFound
}
func (m *userRepoMock) AddFavorite(ctx context.Context, userID, productID string) error {
	if m.addFavoriteFn != nil {
		return m.addFavoriteFn(ctx, userID, productID)
	}
	return nil
}
func (m *userRepoMock) RemoveFavorite(ctx context.Context, userID, productID string) error {
	if m.removeFavoriteFn != nil {
		return m.removeFavoriteFn(ctx, userID, productID)
	}
	return nil
}
func (m *userRepoMock) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type reviewRepoMock struct {
	createFn              func(ctx context.Context, r *review.Review) error
	getByProductAndUserFn func(ctx context.Context, productID, userID string) (*review.Review, error)
	listByProductFn       func(ctx context.Context, productID string, limit int) ([]*review.Review, error)
	statsFn               func(ctx context.Context, productID string) (*review.Stats, error)
	countFn               func(ctx context.Context) (int64, error)
	globalAvgFn           func(ctx context.Context) (float64, error)
}

func (m *reviewRepoMock) Create(ctx context.Context, r *review.Review) error {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	return nil
}
func (m *reviewRepoMock) GetByProductAndUser(ctx context.Context, productID, userID string) (*review.Review, error) {
	if m.getByProductAndUserFn != nil {
		return m.getByProductAndUserFn(ctx, productID, userID)
	}
	return nil, nil
}
func (m *reviewRepoMock) ListByProduct(ctx context.Context, productID string, limit int) ([]*review.Review, error) {
	if m.listByProductFn != nil {
		return m.listByProductFn(ctx, productID, limit)
	}
	return []*review.Review{}, nil
}
func (m *reviewRepoMock) Stats(ctx context.Context, productID string) (*review.Stats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, productID)
	}
	return review.EmptyStats(), nil
}
func (m *reviewRepoMock) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}
func (m *reviewRepoMock) GlobalAverageRating(ctx context.Context) (float64, error) {
	if m.globalAvgFn != nil {
		return m.globalAvgFn(ctx)
	}
	return 0, nil
}
