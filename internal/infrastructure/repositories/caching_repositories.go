package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/techstore3d/backend/internal/core/domain/product"
	"github.com/techstore3d/backend/internal/core/domain/review"
	"github.com/techstore3d/backend/internal/core/domain/user"
	"github.com/techstore3d/backend/internal/core/ports"
	"github.com/techstore3d/backend/internal/infrastructure/cache"
)

// Cache namespaces. Listing-shaped reads share the "products" namespace so
// one write invalidates every stale listing at once; single-product reads
// live under "product" keyed by ID.
const (
	nsProducts = "products"
	nsProduct  = "product"
	nsReviews  = "reviews"
	nsUser     = "user"
)

// CachingProductRepository wraps a product repository with read-through
// caching and write-path invalidation.
type CachingProductRepository struct {
	next        ports.ProductRepository
	backend     ports.CacheBackend
	invalidator *cache.Invalidator
	listTTL     time.Duration
	itemTTL     time.Duration
	logger      *logrus.Logger
}

func NewCachingProductRepository(next ports.ProductRepository, backend ports.CacheBackend, listTTL, itemTTL time.Duration, logger *logrus.Logger) ports.ProductRepository {
	return &CachingProductRepository{
		next:        next,
		backend:     backend,
		invalidator: cache.NewInvalidator(backend, logger),
		listTTL:     listTTL,
		itemTTL:     itemTTL,
		logger:      logger,
	}
}

func (r *CachingProductRepository) Create(ctx context.Context, p *product.Product) error {
	if err := r.next.Create(ctx, p); err != nil {
		return err
	}
	r.invalidateProducts(ctx)
	return nil
}

func (r *CachingProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	return cache.Memoize(ctx, r.backend, nsProduct, r.itemTTL,
		map[string]any{"id": id},
		func(ctx context.Context) (*product.Product, error) {
			return r.next.GetByID(ctx, id)
		})
}

// GetByIDs is a favorites lookup with a volatile ID set; not worth caching.
func (r *CachingProductRepository) GetByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	return r.next.GetByIDs(ctx, ids)
}

func (r *CachingProductRepository) List(ctx context.Context, filter *product.Filter) ([]*product.Product, error) {
	params := map[string]any{
		"op":           "list",
		"category":     filter.Category,
		"product_type": filter.ProductType,
		"featured":     filter.Featured,
		"search":       filter.Search,
		"min_price":    filter.MinPrice,
		"max_price":    filter.MaxPrice,
		"limit":        filter.Limit,
	}
	return cache.Memoize(ctx, r.backend, nsProducts, r.listTTL, params,
		func(ctx context.Context) ([]*product.Product, error) {
			return r.next.List(ctx, filter)
		})
}

func (r *CachingProductRepository) Update(ctx context.Context, id string, req *product.UpdateRequest) (*product.Product, error) {
	p, err := r.next.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	r.invalidateProducts(ctx)
	return p, nil
}

func (r *CachingProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidateProducts(ctx)
	return nil
}

func (r *CachingProductRepository) Recommendations(ctx context.Context, p *product.Product, limit int) ([]*product.Product, error) {
	params := map[string]any{"op": "recommendations", "id": p.ID, "limit": limit}
	return cache.Memoize(ctx, r.backend, nsProducts, r.listTTL, params,
		func(ctx context.Context) ([]*product.Product, error) {
			return r.next.Recommendations(ctx, p, limit)
		})
}

func (r *CachingProductRepository) Trending(ctx context.Context, limit int) ([]*product.Product, error) {
	params := map[string]any{"op": "trending", "limit": limit}
	return cache.Memoize(ctx, r.backend, nsProducts, r.listTTL, params,
		func(ctx context.Context) ([]*product.Product, error) {
			return r.next.Trending(ctx, limit)
		})
}

func (r *CachingProductRepository) Count(ctx context.Context, featuredOnly bool) (int64, error) {
	return r.next.Count(ctx, featuredOnly)
}

// invalidateProducts runs after every successful catalog write: listings
// and per-product entries both go.
func (r *CachingProductRepository) invalidateProducts(ctx context.Context) {
	r.invalidator.InvalidateNamespace(ctx, nsProducts)
	r.invalidator.InvalidateNamespace(ctx, nsProduct)
}

// CachingReviewRepository caches per-product review reads under a namespace
// scoped to the product, so a new review only evicts that product's entries.
type CachingReviewRepository struct {
	next        ports.ReviewRepository
	backend     ports.CacheBackend
	invalidator *cache.Invalidator
	ttl         time.Duration
	logger      *logrus.Logger
}

func NewCachingReviewRepository(next ports.ReviewRepository, backend ports.CacheBackend, ttl time.Duration, logger *logrus.Logger) ports.ReviewRepository {
	return &CachingReviewRepository{
		next:        next,
		backend:     backend,
		invalidator: cache.NewInvalidator(backend, logger),
		ttl:         ttl,
		logger:      logger,
	}
}

func reviewNamespace(productID string) string {
	return strings.Join([]string{nsReviews, productID}, ":")
}

func (r *CachingReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	if err := r.next.Create(ctx, rev); err != nil {
		return err
	}
	r.invalidator.InvalidateScoped(ctx, nsReviews, rev.ProductID)
	return nil
}

func (r *CachingReviewRepository) GetByProductAndUser(ctx context.Context, productID, userID string) (*review.Review, error) {
	// Duplicate-review guard; must see the latest write, never cached.
	return r.next.GetByProductAndUser(ctx, productID, userID)
}

func (r *CachingReviewRepository) ListByProduct(ctx context.Context, productID string, limit int) ([]*review.Review, error) {
	params := map[string]any{"op": "list", "limit": limit}
	return cache.Memoize(ctx, r.backend, reviewNamespace(productID), r.ttl, params,
		func(ctx context.Context) ([]*review.Review, error) {
			return r.next.ListByProduct(ctx, productID, limit)
		})
}

func (r *CachingReviewRepository) Stats(ctx context.Context, productID string) (*review.Stats, error) {
	params := map[string]any{"op": "stats"}
	return cache.Memoize(ctx, r.backend, reviewNamespace(productID), r.ttl, params,
		func(ctx context.Context) (*review.Stats, error) {
			return r.next.Stats(ctx, productID)
		})
}

func (r *CachingReviewRepository) Count(ctx context.Context) (int64, error) {
	return r.next.Count(ctx)
}

func (r *CachingReviewRepository) GlobalAverageRating(ctx context.Context) (float64, error) {
	return r.next.GlobalAverageRating(ctx)
}

// CachingUserRepository caches user reads under a per-user namespace;
// favorite mutations evict only that user's entries.
type CachingUserRepository struct {
	next        ports.UserRepository
	backend     ports.CacheBackend
	invalidator *cache.Invalidator
	ttl         time.Duration
	logger      *logrus.Logger
}

func NewCachingUserRepository(next ports.UserRepository, backend ports.CacheBackend, ttl time.Duration, logger *logrus.Logger) ports.UserRepository {
	return &CachingUserRepository{
		next:        next,
		backend:     backend,
		invalidator: cache.NewInvalidator(backend, logger),
		ttl:         ttl,
		logger:      logger,
	}
}

func userNamespace(userID string) string {
	return strings.Join([]string{nsUser, userID}, ":")
}

func (r *CachingUserRepository) Create(ctx context.Context, u *user.User) error {
	return r.next.Create(ctx, u)
}

func (r *CachingUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return cache.Memoize(ctx, r.backend, userNamespace(id), r.ttl,
		map[string]any{"op": "get"},
		func(ctx context.Context) (*user.User, error) {
			return r.next.GetByID(ctx, id)
		})
}

func (r *CachingUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	// Uniqueness check on signup; must not serve stale results.
	return r.next.GetByEmail(ctx, email)
}

func (r *CachingUserRepository) AddFavorite(ctx context.Context, userID, productID string) error {
	if err := r.next.AddFavorite(ctx, userID, productID); err != nil {
		return err
	}
	r.invalidator.InvalidateScoped(ctx, nsUser, userID)
	return nil
}

func (r *CachingUserRepository) RemoveFavorite(ctx context.Context, userID, productID string) error {
	if err := r.next.RemoveFavorite(ctx, userID, productID); err != nil {
		return err
	}
	r.invalidator.InvalidateScoped(ctx, nsUser, userID)
	return nil
}

func (r *CachingUserRepository) Count(ctx context.Context) (int64, error) {
	return r.next.Count(ctx)
}
