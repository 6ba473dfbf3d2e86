package ports

import (
	"context"

	"github.com/techstore3d/backend/internal/core/domain/cart"
	"github.com/techstore3d/backend/internal/core/domain/product"
	"github.com/techstore3d/backend/internal/core/domain/review"
	"github.com/techstore3d/backend/internal/core/domain/status"
	"github.com/techstore3d/backend/internal/core/domain/user"
)

// ProductRepository is the product collection of the document store.
type ProductRepository interface {
	Create(ctx context.Context, p *product.Product) error
	GetByID(ctx context.Context, id string) (*product.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*product.Product, error)
	List(ctx context.Context, filter *product.Filter) ([]*product.Product, error)
	Update(ctx context.Context, id string, req *product.UpdateRequest) (*product.Product, error)
	Delete(ctx context.Context, id string) error
	// Recommendations returns products near p in category and price band.
	Recommendations(ctx context.Context, p *product.Product, limit int) ([]*product.Product, error)
	// Trending ranks products by recent review volume and featured status.
	Trending(ctx context.Context, limit int) ([]*product.Product, error)
	Count(ctx context.Context, featuredOnly bool) (int64, error)
}

type CartRepository interface {
	Create(ctx context.Context, c *cart.Cart) error
	GetBySession(ctx context.Context, sessionID string) (*cart.Cart, error)
	Update(ctx context.Context, c *cart.Cart) error
	Count(ctx context.Context) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	AddFavorite(ctx context.Context, userID, productID string) error
	RemoveFavorite(ctx context.Context, userID, productID string) error
	Count(ctx context.Context) (int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) error
	GetByProductAndUser(ctx context.Context, productID, userID string) (*review.Review, error)
	ListByProduct(ctx context.Context, productID string, limit int) ([]*review.Review, error)
	Stats(ctx context.Context, productID string) (*review.Stats, error)
	Count(ctx context.Context) (int64, error)
	GlobalAverageRating(ctx context.Context) (float64, error)
}

type StatusRepository interface {
	Create(ctx context.Context, c *status.Check) error
	List(ctx context.Context, limit int) ([]*status.Check, error)
}

// ProductService exposes catalog operations to the transport layer.
type ProductService interface {
	CreateProduct(ctx context.Context, req *product.CreateRequest) (*product.Product, error)
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	ListProducts(ctx context.Context, filter *product.Filter) ([]*product.Product, error)
	UpdateProduct(ctx context.Context, id string, req *product.UpdateRequest) (*product.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetRecommendations(ctx context.Context, productID string, limit int) ([]*product.Product, error)
	GetTrending(ctx context.Context, limit int) ([]*product.Product, error)
	GetDashboardStats(ctx context.Context) (*product.DashboardStats, error)
}

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*cart.Cart, error)
	AddItem(ctx context.Context, sessionID string, req *cart.AddItemRequest) (*cart.Cart, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*cart.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type UserService interface {
	CreateUser(ctx context.Context, req *user.CreateRequest) (*user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
	AddFavorite(ctx context.Context, userID, productID string) error
	RemoveFavorite(ctx context.Context, userID, productID string) error
	ListFavorites(ctx context.Context, userID string) ([]*product.Product, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, req *review.CreateRequest) (*review.Review, error)
	ListProductReviews(ctx context.Context, productID string, limit int) ([]*review.Review, error)
	GetProductReviewStats(ctx context.Context, productID string) (*review.Stats, error)
}

type StatusService interface {
	CreateStatusCheck(ctx context.Context, req *status.CreateRequest) (*status.Check, error)
	ListStatusChecks(ctx context.Context, limit int) ([]*status.Check, error)
}
