package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	impl "github.com/techstore3d/backend/internal/application/services"
	"github.com/techstore3d/backend/internal/core/domain/product"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestCreateProduct_Success(t *testing.T) {
	var created *product.Product
	pr := &productRepoMock{createFn: func(ctx context.Context, p *product.Product) error {
		created = p
		return nil
	}}
	svc := impl.NewProductService(pr, &userRepoMock{}, &cartRepoMock{}, &reviewRepoMock{}, quietLogger())

	p, err := svc.CreateProduct(context.Background(), &product.CreateRequest{Name: "MacBook", Price: 1999})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated product ID")
	}
	if created == nil || created.ID != p.ID {
		t.Fatalf("product not handed to repository")
	}
}

func TestListProducts_ClampsLimit(t *testing.T) {
	var gotLimit int
	pr := &productRepoMock{listFn: func(ctx context.Context, f *product.Filter) ([]*product.Product, error) {
		gotLimit = f.Limit
		return []*product.Product{}, nil
	}}
	svc := impl.NewProductService(pr, &userRepoMock{}, &cartRepoMock{}, &reviewRepoMock{}, quietLogger())

	if _, err := svc.ListProducts(context.Background(), &product.Filter{Limit: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != product.DefaultListLimit {
		t.Fatalf("limit not clamped: got %d", gotLimit)
	}
}

func TestGetRecommendations_UnknownProduct(t *testing.T) {
	svc := impl.NewProductService(&productRepoMock{}, &userRepoMock{}, &cartRepoMock{}, &reviewRepoMock{}, quietLogger())
	_, err := svc.GetRecommendations(context.Background(), "missing", 4)
	if !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetDashboardStats(t *testing.T) {
	pr := &productRepoMock{countFn: func(ctx context.Context, featuredOnly bool) (int64, error) {
		if featuredOnly {
			return 3, nil
		}
		return 10, nil
	}}
	ur := &userRepoMock{countFn: func(ctx context.Context) (int64, error) { return 7, nil }}
	cr := &cartRepoMock{countFn: func(ctx context.Context) (int64, error) { return 2, nil }}
	rr := &reviewRepoMock{
		countFn:     func(ctx context.Context) (int64, error) { return 5, nil },
		globalAvgFn: func(ctx context.Context) (float64, error) { return 4.2, nil },
	}
	svc := impl.NewProductService(pr, ur, cr, rr, quietLogger())

	stats, err := svc.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalProducts != 10 || stats.FeaturedProducts != 3 {
		t.Fatalf("unexpected product counts: %+v", stats)
	}
	if stats.TotalUsers != 7 || stats.TotalCarts != 2 || stats.TotalReviews != 5 {
		t.Fatalf("unexpected collection counts: %+v", stats)
	}
	if stats.AverageRating != 4.2 {
		t.Fatalf("unexpected average rating: %v", stats.AverageRating)
	}
}
