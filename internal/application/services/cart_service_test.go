package services_test

import (
	"context"
	"errors"
	"testing"

	impl "github.com/techstore3d/backend/internal/application/services"
	"github.com/techstore3d/backend/internal/core/domain/cart"
	"github.com/techstore3d/backend/internal/core/domain/product"
)

func TestGetCart_CreatesOnFirstAccess(t *testing.T) {
	var created *cart.Cart
	cr := &cartRepoMock{createFn: func(ctx context.Context, c *cart.Cart) error {
		created = c
		return nil
	}}
	svc := impl.NewCartService(cr, &productRepoMock{}, quietLogger())

	c, err := svc.GetCart(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.SessionID != "sess-1" || len(c.Items) != 0 {
		t.Fatalf("unexpected cart: %+v", c)
	}
	if created == nil {
		t.Fatalf("cart was not persisted")
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc := impl.NewCartService(&cartRepoMock{}, &productRepoMock{}, quietLogger())
	_, err := svc.AddItem(context.Background(), "sess-1", &cart.AddItemRequest{ProductID: "missing", Quantity: 1})
	if !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddItem_MergesSameProductAndColor(t *testing.T) {
	existing := cart.New("sess-1")
	existing.AddItem(&cart.AddItemRequest{ProductID: "p1", Quantity: 1, SelectedColor: "black"})

	pr := &productRepoMock{getByIDFn: func(ctx context.Context, id string) (*product.Product, error) {
		return &product.Product{ID: id}, nil
	}}
	cr := &cartRepoMock{
		getBySessionFn: func(ctx context.Context, sessionID string) (*cart.Cart, error) { return existing, nil },
	}
	svc := impl.NewCartService(cr, pr, quietLogger())

	c, err := svc.AddItem(context.Background(), "sess-1", &cart.AddItemRequest{ProductID: "p1", Quantity: 2, SelectedColor: "black"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", c.Items[0].Quantity)
	}
}

func TestClearCart_MissingCartIsNoop(t *testing.T) {
	svc := impl.NewCartService(&cartRepoMock{}, &productRepoMock{}, quietLogger())
	if err := svc.ClearCart(context.Background(), "sess-unknown"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
