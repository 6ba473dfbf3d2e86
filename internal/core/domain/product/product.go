package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no product matches the requested ID.
var ErrNotFound = errors.New("product not found")

type Product struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	ProductType string    `json:"product_type" bson:"product_type"` // laptop, phone, headphones, watch
	Colors      []string  `json:"colors" bson:"colors"`
	ModelURL    string    `json:"model_url,omitempty" bson:"model_url,omitempty"`
	Images      []string  `json:"images" bson:"images"`
	Stock       int       `json:"stock" bson:"stock"`
	Featured    bool      `json:"featured" bson:"featured"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type CreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ProductType string   `json:"product_type"`
	Colors      []string `json:"colors"`
	ModelURL    string   `json:"model_url"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
	Featured    bool     `json:"featured"`
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	ProductType *string   `json:"product_type"`
	Colors      *[]string `json:"colors"`
	ModelURL    *string   `json:"model_url"`
	Images      *[]string `json:"images"`
	Stock       *int      `json:"stock"`
	Featured    *bool     `json:"featured"`
}

// Filter narrows a product listing. Nil pointer fields mean "no constraint".
type Filter struct {
	Category    string
	ProductType string
	Featured    *bool
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	Limit       int
}

// DefaultListLimit caps unbounded listing queries.
const DefaultListLimit = 50

// New builds a Product from a create request with a fresh ID and timestamps.
func New(req *CreateRequest) *Product {
	now := time.Now().UTC()
	colors := req.Colors
	if colors == nil {
		colors = []string{}
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}
	return &Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ProductType: req.ProductType,
		Colors:      colors,
		ModelURL:    req.ModelURL,
		Images:      images,
		Stock:       req.Stock,
		Featured:    req.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DashboardStats summarizes the catalog for the admin dashboard.
type DashboardStats struct {
	TotalProducts    int64   `json:"total_products"`
	FeaturedProducts int64   `json:"featured_products"`
	TotalUsers       int64   `json:"total_users"`
	TotalCarts       int64   `json:"total_carts"`
	TotalReviews     int64   `json:"total_reviews"`
	AverageRating    float64 `json:"average_rating"`
}
