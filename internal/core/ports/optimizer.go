package ports

import "context"

// IndexReport lists the indexes created and skipped for one collection.
type IndexReport struct {
	Collection string   `json:"collection"`
	Created    []string `json:"created"`
	Skipped    []string `json:"skipped,omitempty"`
}

// CollectionStats is a storage-level snapshot of one collection.
type CollectionStats struct {
	DocumentCount  int64    `json:"document_count"`
	Indexes        []string `json:"indexes"`
	IndexCount     int      `json:"index_count"`
	StorageSize    int64    `json:"storage_size"`
	TotalIndexSize int64    `json:"total_index_size"`
	AvgObjSize     int64    `json:"avg_obj_size"`
}

// QueryAnalysis is the outcome of explaining and timing one query.
type QueryAnalysis struct {
	Collection        string         `json:"collection"`
	Query             map[string]any `json:"query"`
	ExecutionTimeMs   float64        `json:"execution_time_ms"`
	DocumentsExamined int64          `json:"documents_examined"`
	DocumentsReturned int64          `json:"documents_returned"`
	IndexUsed         string         `json:"index_used,omitempty"`
	Stage             string         `json:"stage,omitempty"`
	Recommendations   []string       `json:"recommendations"`
}

// DatabaseOptimizer maintains indexes and inspects query performance on the
// document store. Its write operations (index creation, compaction) change
// physical layout only; callers that expose them next to cached read paths
// are responsible for any cache invalidation their own writes require.
type DatabaseOptimizer interface {
	CreateIndexes(ctx context.Context) ([]IndexReport, error)
	GetCollectionStats(ctx context.Context) (map[string]CollectionStats, error)
	AnalyzeQuery(ctx context.Context, collection string, query map[string]any, limit int) (*QueryAnalysis, error)
	OptimizeCollection(ctx context.Context, collection string) (string, error)
}
