package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("cart not found")

type Item struct {
	ID            string    `json:"id" bson:"id"`
	ProductID     string    `json:"product_id" bson:"product_id"`
	Quantity      int       `json:"quantity" bson:"quantity"`
	SelectedColor string    `json:"selected_color" bson:"selected_color"`
	AddedAt       time.Time `json:"added_at" bson:"added_at"`
}

// Cart is a session-scoped shopping cart. Guest carts have no user ID.
type Cart struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	SessionID string    `json:"session_id" bson:"session_id"`
	Items     []Item    `json:"items" bson:"items"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type AddItemRequest struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selected_color"`
}

// New creates an empty cart for a session.
func New(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem merges the request into the cart: an existing line with the same
// product and color has its quantity bumped, otherwise a new line is added.
func (c *Cart) AddItem(req *AddItemRequest) {
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == req.ProductID && c.Items[i].SelectedColor == req.SelectedColor {
			c.Items[i].Quantity += qty
			c.UpdatedAt = time.Now().UTC()
			return
		}
	}
	c.Items = append(c.Items, Item{
		ID:            uuid.NewString(),
		ProductID:     req.ProductID,
		Quantity:      qty,
		SelectedColor: req.SelectedColor,
		AddedAt:       time.Now().UTC(),
	})
	c.UpdatedAt = time.Now().UTC()
}

// RemoveItem drops the line with the given item ID. It reports whether a
// line was removed.
func (c *Cart) RemoveItem(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.UpdatedAt = time.Now().UTC()
}
