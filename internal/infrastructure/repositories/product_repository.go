package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/techstore3d/backend/internal/core/domain/product"
	"github.com/techstore3d/backend/internal/core/ports"
	"github.com/techstore3d/backend/internal/infrastructure/db"
)

// ProductRepository implements the product repository on MongoDB.
type ProductRepository struct {
	col    *mongo.Collection
	logger *logrus.Logger
}

func NewProductRepository(database *db.Database, logger *logrus.Logger) ports.ProductRepository {
	return &ProductRepository{col: database.Collection("products"), logger: logger}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		r.logger.WithField("product_id", p.ID).WithError(err).Error("db: failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}
	r.logger.WithField("product_id", p.ID).Info("db: product created")
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, product.ErrNotFound
		}
		r.logger.WithField("product_id", id).WithError(err).Error("db: failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get products by ids: %w", err)
	}
	return decodeProducts(ctx, cur)
}

// List runs the filtered catalog query: equality filters, a price range and
// a case-insensitive regex search over name/description/category.
func (r *ProductRepository) List(ctx context.Context, filter *product.Filter) ([]*product.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.ProductType != "" {
		query["product_type"] = filter.ProductType
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
			bson.M{"category": regex},
		}
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = product.DefaultListLimit
	}
	cur, err := r.col.Find(ctx, query, options.Find().SetLimit(int64(limit)))
	if err != nil {
		r.logger.WithError(err).Error("db: failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return decodeProducts(ctx, cur)
}

func (r *ProductRepository) Update(ctx context.Context, id string, req *product.UpdateRequest) (*product.Product, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.ProductType != nil {
		set["product_type"] = *req.ProductType
	}
	if req.Colors != nil {
		set["colors"] = *req.Colors
	}
	if req.ModelURL != nil {
		set["model_url"] = *req.ModelURL
	}
	if req.Images != nil {
		set["images"] = *req.Images
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		r.logger.WithField("product_id", id).WithError(err).Error("db: failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, product.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		r.logger.WithField("product_id", id).WithError(err).Error("db: failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return product.ErrNotFound
	}
	return nil
}

// Recommendations finds products near p: same category first, then other
// categories, both within a ±30% price band around p.
func (r *ProductRepository) Recommendations(ctx context.Context, p *product.Product, limit int) ([]*product.Product, error) {
	band := p.Price * 0.3
	minPrice, maxPrice := p.Price-band, p.Price+band
	priceRange := bson.M{"$gte": minPrice, "$lte": maxPrice}

	cur, err := r.col.Find(ctx, bson.M{
		"id":       bson.M{"$ne": p.ID},
		"category": p.Category,
		"price":    priceRange,
	}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}
	recs, err := decodeProducts(ctx, cur)
	if err != nil {
		return nil, err
	}

	if remaining := limit - len(recs); remaining > 0 {
		cur, err := r.col.Find(ctx, bson.M{
			"id":       bson.M{"$ne": p.ID},
			"category": bson.M{"$ne": p.Category},
			"price":    priceRange,
		}, options.Find().SetLimit(int64(remaining)))
		if err != nil {
			return nil, fmt.Errorf("failed to find recommendations: %w", err)
		}
		more, err := decodeProducts(ctx, cur)
		if err != nil {
			return nil, err
		}
		recs = append(recs, more...)
	}
	return recs, nil
}

// Trending scores products by review volume (x2) plus a featured bonus (+5)
// and returns the top scorers, newest first among ties.
func (r *ProductRepository) Trending(ctx context.Context, limit int) ([]*product.Product, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "reviews",
			"localField":   "id",
			"foreignField": "product_id",
			"as":           "recent_reviews",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"trend_score": bson.M{"$add": bson.A{
				bson.M{"$multiply": bson.A{bson.M{"$size": "$recent_reviews"}, 2}},
				bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$featured", true}}, 5, 0}},
			}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "trend_score", Value: -1}, {Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$project", Value: bson.M{"recent_reviews": 0, "trend_score": 0}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.WithError(err).Error("db: trending aggregation failed")
		return nil, fmt.Errorf("failed to get trending products: %w", err)
	}
	return decodeProducts(ctx, cur)
}

func (r *ProductRepository) Count(ctx context.Context, featuredOnly bool) (int64, error) {
	query := bson.M{}
	if featuredOnly {
		query["featured"] = true
	}
	count, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func decodeProducts(ctx context.Context, cur *mongo.Cursor) ([]*product.Product, error) {
	products := []*product.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}
