package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/techstore3d/backend/internal/core/ports"
)

// optimizedCollections is the set of collections the optimizer maintains.
var optimizedCollections = []string{"products", "users", "carts", "reviews", "status_checks"}

// Optimizer creates indexes for the store's common query patterns and
// exposes storage/performance introspection. It never touches cached data;
// callers that mutate documents around it own the matching invalidation.
type Optimizer struct {
	db     *Database
	logger *logrus.Logger
}

func NewOptimizer(database *Database, logger *logrus.Logger) *Optimizer {
	return &Optimizer{db: database, logger: logger}
}

// indexModels returns the per-collection index definitions, mirroring the
// query patterns of the repositories: filter fields, sort fields, the
// compound combinations the product listing uses, and a text index for
// search.
func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		"products": {
			{Keys: bson.D{{Key: "id", Value: 1}}},
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "product_type", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "featured", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "stock", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "featured", Value: 1}}},
			{Keys: bson.D{{Key: "product_type", Value: 1}, {Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "featured", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "product_type", Value: 1}, {Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}, {Key: "category", Value: "text"}}},
		},
		"users": {
			{Keys: bson.D{{Key: "id", Value: 1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		"carts": {
			{Keys: bson.D{{Key: "session_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "updated_at", Value: -1}}},
			{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "updated_at", Value: -1}}},
		},
		"reviews": {
			{Keys: bson.D{{Key: "product_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "rating", Value: -1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "rating", Value: -1}}},
			{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"status_checks": {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "client_name", Value: 1}}},
		},
	}
}

// CreateIndexes builds all indexes, tolerating ones that already exist.
func (o *Optimizer) CreateIndexes(ctx context.Context) ([]ports.IndexReport, error) {
	reports := make([]ports.IndexReport, 0, len(optimizedCollections))
	for _, name := range optimizedCollections {
		models := indexModels()[name]
		report := ports.IndexReport{Collection: name}
		for _, model := range models {
			created, err := o.db.Collection(name).Indexes().CreateOne(ctx, model)
			if err != nil {
				if strings.Contains(strings.ToLower(err.Error()), "already exists") {
					report.Skipped = append(report.Skipped, indexLabel(model))
					continue
				}
				o.logger.WithFields(logrus.Fields{"collection": name, "index": indexLabel(model)}).WithError(err).Error("db: failed to create index")
				return reports, fmt.Errorf("failed to create index on %s: %w", name, err)
			}
			report.Created = append(report.Created, created)
		}
		reports = append(reports, report)
	}
	o.logger.Info("db: all indexes created")
	return reports, nil
}

func indexLabel(model mongo.IndexModel) string {
	keys, ok := model.Keys.(bson.D)
	if !ok {
		return fmt.Sprintf("%v", model.Keys)
	}
	parts := make([]string, 0, len(keys))
	for _, e := range keys {
		parts = append(parts, fmt.Sprintf("%s_%v", e.Key, e.Value))
	}
	return strings.Join(parts, "_")
}

// GetCollectionStats reports document counts, index names and storage sizes
// for every optimized collection. Per-collection errors are recorded in the
// log but do not fail the whole snapshot.
func (o *Optimizer) GetCollectionStats(ctx context.Context) (map[string]ports.CollectionStats, error) {
	stats := make(map[string]ports.CollectionStats, len(optimizedCollections))
	for _, name := range optimizedCollections {
		coll := o.db.Collection(name)

		count, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			o.logger.WithField("collection", name).WithError(err).Warn("db: count failed")
			continue
		}

		cur, err := coll.Indexes().List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list indexes for %s: %w", name, err)
		}
		var indexDocs []bson.M
		if err := cur.All(ctx, &indexDocs); err != nil {
			return nil, fmt.Errorf("failed to read indexes for %s: %w", name, err)
		}
		names := make([]string, 0, len(indexDocs))
		for _, doc := range indexDocs {
			if n, ok := doc["name"].(string); ok {
				names = append(names, n)
			}
		}

		cs := ports.CollectionStats{
			DocumentCount: count,
			Indexes:       names,
			IndexCount:    len(names),
		}
		var collStats bson.M
		if err := o.db.DB.RunCommand(ctx, bson.D{{Key: "collStats", Value: name}}).Decode(&collStats); err == nil {
			cs.StorageSize = toInt64(collStats["storageSize"])
			cs.TotalIndexSize = toInt64(collStats["totalIndexSize"])
			cs.AvgObjSize = toInt64(collStats["avgObjSize"])
		}
		stats[name] = cs
	}
	return stats, nil
}

// AnalyzeQuery explains a find, times its execution and suggests index work
// when the plan looks bad.
func (o *Optimizer) AnalyzeQuery(ctx context.Context, collection string, query map[string]any, limit int) (*ports.QueryAnalysis, error) {
	if limit <= 0 {
		limit = 100
	}
	filter := bson.M(query)

	var explain bson.M
	cmd := bson.D{
		{Key: "explain", Value: bson.D{
			{Key: "find", Value: collection},
			{Key: "filter", Value: filter},
			{Key: "limit", Value: limit},
		}},
		{Key: "verbosity", Value: "executionStats"},
	}
	if err := o.db.DB.RunCommand(ctx, cmd).Decode(&explain); err != nil {
		return nil, fmt.Errorf("failed to explain query on %s: %w", collection, err)
	}

	start := time.Now()
	cur, err := o.db.Collection(collection).Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to run query on %s: %w", collection, err)
	}
	var results []bson.M
	if err := cur.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to read query results on %s: %w", collection, err)
	}
	elapsed := time.Since(start)

	analysis := &ports.QueryAnalysis{
		Collection:        collection,
		Query:             query,
		ExecutionTimeMs:   float64(elapsed.Microseconds()) / 1000.0,
		DocumentsReturned: int64(len(results)),
	}
	if execStats, ok := explain["executionStats"].(bson.M); ok {
		analysis.DocumentsExamined = toInt64(execStats["totalDocsExamined"])
		if plan, ok := execStats["winningPlan"].(bson.M); ok {
			analysis.Stage, _ = plan["stage"].(string)
			if input, ok := plan["inputStage"].(bson.M); ok {
				analysis.IndexUsed, _ = input["indexName"].(string)
			}
		}
	}

	recs := []string{}
	if analysis.DocumentsExamined > analysis.DocumentsReturned*10 {
		recs = append(recs, "Consider adding an index for this query pattern")
	}
	if analysis.ExecutionTimeMs > 100 {
		recs = append(recs, "Query is slow - consider optimization")
	}
	if analysis.IndexUsed == "" {
		recs = append(recs, "Query is not using any index - collection scan detected")
	}
	analysis.Recommendations = recs
	return analysis, nil
}

// OptimizeCollection asks the server to compact the collection. Compaction
// is unsupported on some deployments; that is reported, not failed.
func (o *Optimizer) OptimizeCollection(ctx context.Context, collection string) (string, error) {
	var result bson.M
	err := o.db.DB.RunCommand(ctx, bson.D{{Key: "compact", Value: collection}}).Decode(&result)
	if err != nil {
		o.logger.WithField("collection", collection).WithError(err).Warn("db: compaction not available")
		return "not_available", nil
	}
	return "compacted", nil
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

var _ ports.DatabaseOptimizer = (*Optimizer)(nil)
