package ports

import (
	"context"
	"time"
)

// CacheBackend is the capability set shared by the in-process and Redis
// cache implementations.
//
// Backends degrade instead of failing: every operation on a disconnected or
// broken backend reports a miss (Get) or false (Set/Delete/ClearMatching)
// without returning an error, so the cache can never fail a request that
// could be served from the primary datastore.
type CacheBackend interface {
	// Connect prepares the backend. On failure the backend stays disabled
	// and the returned error is informational; callers log it and continue.
	Connect(ctx context.Context) error
	// Disconnect releases the backend. A disconnected backend stays
	// disabled until Connect is called again.
	Disconnect(ctx context.Context) error
	// Get returns the stored bytes for key. ok is false when the key is
	// absent, expired, or the backend is disabled.
	Get(ctx context.Context, key string) (value []byte, ok bool)
	// Set stores value under key for ttl, overwriting any previous entry.
	// A non-positive ttl stores an already-expired entry: the key becomes
	// unretrievable, it does not live forever.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	// Delete removes key. Absence is not a failure.
	Delete(ctx context.Context, key string) bool
	// ClearMatching removes every key matching pattern. Patterns are
	// glob-style with '*' as the wildcard, anchored at both ends; a
	// pattern without wildcards is an exact-match delete. The universal
	// pattern "*" clears the whole cache.
	ClearMatching(ctx context.Context, pattern string) bool
	// Stats reports a point-in-time snapshot, sweeping expired entries
	// first where the backend owns expiry.
	Stats(ctx context.Context) CacheStats
	// Connected reports whether the backend currently accepts operations.
	Connected() bool
}

// CacheStats is a read-only snapshot of a backend.
type CacheStats struct {
	Status  string `json:"status"`  // connected or disconnected
	Backend string `json:"backend"` // memory or redis
	Keys    int64  `json:"keys"`
	// MemoryBytes is a best-effort estimate: the sum of serialized entry
	// sizes for the memory backend, used_memory for Redis.
	MemoryBytes int64 `json:"memory_bytes"`
	// Hits/Misses are only meaningful when Tracked is true; a backend
	// that cannot observe them reports Tracked=false rather than zeros.
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Tracked bool  `json:"counters_tracked"`
}

const (
	CacheStatusConnected    = "connected"
	CacheStatusDisconnected = "disconnected"
)
