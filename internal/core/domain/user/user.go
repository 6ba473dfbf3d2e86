package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("user with this email already exists")
)

type User struct {
	ID        string    `json:"id" bson:"id"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	Favorites []string  `json:"favorites" bson:"favorites"` // product IDs
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type CreateRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func New(req *CreateRequest) *User {
	return &User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		Favorites: []string{},
		CreatedAt: time.Now().UTC(),
	}
}
