package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstore3d/backend/internal/core/domain/product"
	"github.com/techstore3d/backend/internal/core/domain/review"
	"github.com/techstore3d/backend/internal/core/domain/user"
	"github.com/techstore3d/backend/internal/infrastructure/cache"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testBackend(t *testing.T) *cache.MemoryBackend {
	t.Helper()
	backend := cache.NewMemoryBackend(testLogger())
	require.NoError(t, backend.Connect(context.Background()))
	return backend
}

// fakeProductRepo counts calls so tests can tell cache hits from loads.
type fakeProductRepo struct {
	products  map[string]*product.Product
	listCalls int
	getCalls  int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*product.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	f.getCalls++
	p, ok := f.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []string) ([]*product.Product, error) {
	out := []*product.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(_ context.Context, _ *product.Filter) ([]*product.Product, error) {
	f.listCalls++
	out := []*product.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id string, req *product.UpdateRequest) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	return p, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return product.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) Recommendations(_ context.Context, _ *product.Product, _ int) ([]*product.Product, error) {
	return []*product.Product{}, nil
}

func (f *fakeProductRepo) Trending(_ context.Context, _ int) ([]*product.Product, error) {
	f.listCalls++
	out := []*product.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Count(_ context.Context, _ bool) (int64, error) {
	return int64(len(f.products)), nil
}

func seedProduct(name string) *product.Product {
	return product.New(&product.CreateRequest{Name: name, Price: 99.0, Category: "laptops"})
}

func TestCachingProductRepositoryListCachesUntilWrite(t *testing.T) {
	ctx := context.Background()
	fake := newFakeProductRepo()
	repo := NewCachingProductRepository(fake, testBackend(t), time.Minute, time.Minute, testLogger())

	p := seedProduct("MacBook")
	require.NoError(t, repo.Create(ctx, p))

	filter := &product.Filter{Limit: 10}
	first, err := repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, 1, fake.listCalls)

	// Second identical read is served from cache.
	_, err = repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.listCalls)

	// A write invalidates the listing namespace; the next read reloads.
	require.NoError(t, repo.Create(ctx, seedProduct("iPhone")))
	second, err := repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, 2, fake.listCalls)
}

func TestCachingProductRepositoryGetByIDInvalidatedOnUpdate(t *testing.T) {
	ctx := context.Background()
	fake := newFakeProductRepo()
	repo := NewCachingProductRepository(fake, testBackend(t), time.Minute, time.Minute, testLogger())

	p := seedProduct("MacBook")
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "MacBook", got.Name)
	assert.Equal(t, 1, fake.getCalls)

	_, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.getCalls)

	newName := "MacBook Pro"
	_, err = repo.Update(ctx, p.ID, &product.UpdateRequest{Name: &newName})
	require.NoError(t, err)

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "MacBook Pro", got.Name)
	assert.Equal(t, 2, fake.getCalls)
}

func TestCachingProductRepositoryDistinctFiltersDistinctEntries(t *testing.T) {
	ctx := context.Background()
	fake := newFakeProductRepo()
	repo := NewCachingProductRepository(fake, testBackend(t), time.Minute, time.Minute, testLogger())
	require.NoError(t, repo.Create(ctx, seedProduct("MacBook")))

	_, err := repo.List(ctx, &product.Filter{Limit: 10})
	require.NoError(t, err)
	_, err = repo.List(ctx, &product.Filter{Category: "laptops", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, fake.listCalls)
}

func TestCachingProductRepositoryDegradesWhenDisconnected(t *testing.T) {
	ctx := context.Background()
	fake := newFakeProductRepo()
	backend := cache.NewMemoryBackend(testLogger()) // never connected
	repo := NewCachingProductRepository(fake, backend, time.Minute, time.Minute, testLogger())
	require.NoError(t, repo.Create(ctx, seedProduct("MacBook")))

	for i := 0; i < 3; i++ {
		_, err := repo.List(ctx, &product.Filter{Limit: 10})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, fake.listCalls)
}

type fakeReviewRepo struct {
	reviews   []*review.Review
	listCalls int
}

func (f *fakeReviewRepo) Create(_ context.Context, r *review.Review) error {
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeReviewRepo) GetByProductAndUser(_ context.Context, productID, userID string) (*review.Review, error) {
	for _, r := range f.reviews {
		if r.ProductID == productID && r.UserID == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) ListByProduct(_ context.Context, productID string, _ int) ([]*review.Review, error) {
	f.listCalls++
	out := []*review.Review{}
	for _, r := range f.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Stats(_ context.Context, productID string) (*review.Stats, error) {
	stats := review.EmptyStats()
	for _, r := range f.reviews {
		if r.ProductID == productID {
			stats.TotalReviews++
			stats.RatingDistribution[r.Rating]++
		}
	}
	return stats, nil
}

func (f *fakeReviewRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.reviews)), nil
}

func (f *fakeReviewRepo) GlobalAverageRating(_ context.Context) (float64, error) {
	return 0, nil
}

func TestCachingReviewRepositoryScopedInvalidation(t *testing.T) {
	ctx := context.Background()
	fake := &fakeReviewRepo{}
	repo := NewCachingReviewRepository(fake, testBackend(t), time.Minute, testLogger())

	// Warm both products' listing entries.
	_, err := repo.ListByProduct(ctx, "prod-a", 10)
	require.NoError(t, err)
	_, err = repo.ListByProduct(ctx, "prod-b", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.listCalls)

	// A review for prod-a only evicts prod-a's entries.
	err = repo.Create(ctx, review.New(&review.CreateRequest{
		ProductID: "prod-a", UserID: "u1", UserName: "Ann", Rating: 5,
	}))
	require.NoError(t, err)

	got, err := repo.ListByProduct(ctx, "prod-a", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 3, fake.listCalls)

	_, err = repo.ListByProduct(ctx, "prod-b", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, fake.listCalls, "prod-b entry should have survived")
}

type fakeUserRepo struct {
	users    map[string]*user.User
	getCalls int
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	f.getCalls++
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserRepo) AddFavorite(_ context.Context, userID, productID string) error {
	u, ok := f.users[userID]
	if !ok {
		return user.ErrNotFound
	}
	u.Favorites = append(u.Favorites, productID)
	return nil
}

func (f *fakeUserRepo) RemoveFavorite(_ context.Context, userID, productID string) error {
	u, ok := f.users[userID]
	if !ok {
		return user.ErrNotFound
	}
	out := u.Favorites[:0]
	for _, id := range u.Favorites {
		if id != productID {
			out = append(out, id)
		}
	}
	u.Favorites = out
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func TestCachingUserRepositoryFavoriteMutationEvictsUser(t *testing.T) {
	ctx := context.Background()
	fake := &fakeUserRepo{users: map[string]*user.User{}}
	repo := NewCachingUserRepository(fake, testBackend(t), time.Minute, testLogger())

	u := user.New(&user.CreateRequest{Email: "ann@example.com", Name: "Ann"})
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Favorites)
	assert.Equal(t, 1, fake.getCalls)

	_, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.getCalls)

	require.NoError(t, repo.AddFavorite(ctx, u.ID, "prod-1"))

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-1"}, got.Favorites)
	assert.Equal(t, 2, fake.getCalls)
}
