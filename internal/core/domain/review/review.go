package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDuplicate     = errors.New("user has already reviewed this product")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type Review struct {
	ID        string    `json:"id" bson:"id"`
	ProductID string    `json:"product_id" bson:"product_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	UserName  string    `json:"user_name" bson:"user_name"`
	Rating    int       `json:"rating" bson:"rating"` // 1-5 stars
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type CreateRequest struct {
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (r *CreateRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

func New(req *CreateRequest) *Review {
	return &Review{
		ID:        uuid.NewString(),
		ProductID: req.ProductID,
		UserID:    req.UserID,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
}

// Stats aggregates the reviews of one product.
type Stats struct {
	TotalReviews       int64         `json:"total_reviews"`
	AverageRating      float64       `json:"average_rating"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
}

// EmptyStats is the stats payload for a product without reviews.
func EmptyStats() *Stats {
	return &Stats{
		TotalReviews:       0,
		AverageRating:      0,
		RatingDistribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
}
