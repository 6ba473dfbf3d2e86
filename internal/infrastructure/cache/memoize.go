package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/techstore3d/backend/internal/core/ports"
)

// Memoize runs load through the cache. The key is derived from namespace and
// params; a hit returns the decoded cached value without running load at
// all. On a miss, load runs, and its result is JSON-encoded and stored under
// the key before being returned. Cache trouble is invisible to the caller:
// a failed set still returns the freshly loaded value, and a stored entry
// that no longer decodes counts as a miss.
//
// Concurrent misses for the same key are not coalesced: each caller runs
// load and the last write wins. That is acceptable only because load must be
// an idempotent, side-effect-free read; wrapping a mutation in Memoize is a
// misuse.
func Memoize[T any](ctx context.Context, backend ports.CacheBackend, namespace string, ttl time.Duration, params map[string]any, load func(context.Context) (T, error)) (T, error) {
	key := DeriveKey(namespace, params)

	if raw, ok := backend.Get(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	result, err := load(ctx)
	if err != nil {
		return result, err
	}
	if raw, err := json.Marshal(result); err == nil {
		backend.Set(ctx, key, raw, ttl)
	}
	return result, nil
}
