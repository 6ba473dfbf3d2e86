package health

import (
	"context"
	"errors"

	"github.com/techstore3d/backend/internal/core/ports"
	infraDB "github.com/techstore3d/backend/internal/infrastructure/db"
)

// dbHealthChecker wraps the document store for health checks.
type dbHealthChecker struct{ db *infraDB.Database }

func (d *dbHealthChecker) Name() string                    { return "mongodb" }
func (d *dbHealthChecker) Check(ctx context.Context) error { return d.db.Ping(ctx) }

// cacheHealthChecker reports on the cache backend's connection state.
type cacheHealthChecker struct{ backend ports.CacheBackend }

func (c *cacheHealthChecker) Name() string { return "cache" }
func (c *cacheHealthChecker) Check(ctx context.Context) error {
	if !c.backend.Connected() {
		return errors.New("cache backend disconnected")
	}
	return nil
}

// NewDBHealthChecker creates a health checker for the document store.
func NewDBHealthChecker(db *infraDB.Database) ports.HealthChecker { return &dbHealthChecker{db: db} }

// NewCacheHealthChecker creates a health checker for the cache backend.
func NewCacheHealthChecker(backend ports.CacheBackend) ports.HealthChecker {
	return &cacheHealthChecker{backend: backend}
}
