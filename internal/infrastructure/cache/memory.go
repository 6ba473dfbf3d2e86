package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/techstore3d/backend/internal/core/ports"
)

// entry is one cached value with its expiry bounds. Entries are immutable:
// a Set replaces the whole entry, it never updates one in place.
type entry struct {
	value     []byte
	createdAt time.Time
	expiresAt time.Time
}

// expired reports whether the entry is logically absent at now. The boundary
// itself counts as expired: an entry set with ttl=1s is gone at created+1s.
func (e entry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// store is the expiring entry store backing the in-process cache backend: a
// mutex-guarded map from key to entry. Expired entries are evicted lazily on
// get and eagerly by sweep.
type store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func newStore() *store {
	return &store{entries: make(map[string]entry)}
}

// put overwrites any existing entry for key. A non-positive ttl produces an
// entry that is already expired, never one that lives forever.
func (s *store) put(key string, value []byte, ttl time.Duration) {
	now := time.Now()
	s.mu.Lock()
	s.entries[key] = entry{value: value, createdAt: now, expiresAt: now.Add(ttl)}
	s.mu.Unlock()
}

// get returns the live value for key. Reading an expired entry evicts it;
// the check-and-evict runs as one atomic unit under the write lock.
func (s *store) get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(time.Now()) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

func (s *store) delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// clearMatching removes all keys matching the glob pattern and returns how
// many were removed. "*" is a fast path that drops the whole map.
func (s *store) clearMatching(pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pattern == "*" {
		n := len(s.entries)
		s.entries = make(map[string]entry)
		return n
	}
	n := 0
	for key := range s.entries {
		if globMatch(pattern, key) {
			delete(s.entries, key)
			n++
		}
	}
	return n
}

func (s *store) clearAll() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// sweep eagerly evicts every expired entry so that key counts and memory
// estimates do not include logically absent entries.
func (s *store) sweep() {
	now := time.Now()
	s.mu.Lock()
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// snapshot returns the live key count and the summed size of keys and
// serialized values.
func (s *store) snapshot() (keys int64, bytes int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for key, e := range s.entries {
		keys++
		bytes += int64(len(key) + len(e.value))
	}
	return keys, bytes
}

// globMatch matches s against a glob pattern where '*' matches any run of
// characters. The pattern is anchored at both ends; without a wildcard it
// is an exact match.
func globMatch(pattern, s string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == s
	}
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(s, part)
		if idx < 0 {
			return false
		}
		s = s[idx+len(part):]
	}
	return strings.HasSuffix(s, parts[len(parts)-1])
}

// MemoryBackend is the in-process cache backend. Connect always succeeds
// and resets the store; operations never fail except when the backend has
// been disconnected.
type MemoryBackend struct {
	mu        sync.RWMutex
	store     *store
	connected bool
	hits      int64
	misses    int64
	logger    *logrus.Logger
}

func NewMemoryBackend(logger *logrus.Logger) *MemoryBackend {
	return &MemoryBackend{store: newStore(), logger: logger}
}

// Connect initializes (or resets) the entry store.
func (b *MemoryBackend) Connect(ctx context.Context) error {
	b.mu.Lock()
	b.store = newStore()
	b.connected = true
	b.hits = 0
	b.misses = 0
	b.mu.Unlock()
	if b.logger != nil {
		b.logger.Info("cache: in-memory backend initialized")
	}
	return nil
}

// Disconnect clears the store and disables the backend until the next
// Connect.
func (b *MemoryBackend) Disconnect(ctx context.Context) error {
	b.mu.Lock()
	b.store.clearAll()
	b.connected = false
	b.mu.Unlock()
	if b.logger != nil {
		b.logger.Info("cache: in-memory backend cleared")
	}
	return nil
}

func (b *MemoryBackend) Connected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.connected
}

func (b *MemoryBackend) Get(ctx context.Context, key string) ([]byte, bool) {
	if !b.Connected() {
		return nil, false
	}
	value, ok := b.store.get(key)
	b.count(ok)
	if ok {
		observeOp("memory", "get", "hit")
	} else {
		observeOp("memory", "get", "miss")
	}
	return value, ok
}

func (b *MemoryBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if !b.Connected() {
		return false
	}
	b.store.put(key, value, ttl)
	observeOp("memory", "set", "ok")
	return true
}

func (b *MemoryBackend) Delete(ctx context.Context, key string) bool {
	if !b.Connected() {
		return false
	}
	b.store.delete(key)
	return true
}

func (b *MemoryBackend) ClearMatching(ctx context.Context, pattern string) bool {
	if !b.Connected() {
		return false
	}
	removed := b.store.clearMatching(pattern)
	if b.logger != nil {
		b.logger.WithFields(logrus.Fields{"pattern": pattern, "removed": removed}).Debug("cache: cleared matching keys")
	}
	return true
}

// Stats sweeps expired entries first so the key count and memory estimate
// reflect only live entries.
func (b *MemoryBackend) Stats(ctx context.Context) ports.CacheStats {
	b.mu.RLock()
	connected := b.connected
	hits, misses := b.hits, b.misses
	b.mu.RUnlock()

	stats := ports.CacheStats{Backend: "memory", Status: ports.CacheStatusDisconnected}
	if !connected {
		return stats
	}
	b.store.sweep()
	keys, bytes := b.store.snapshot()
	stats.Status = ports.CacheStatusConnected
	stats.Keys = keys
	stats.MemoryBytes = bytes
	stats.Hits = hits
	stats.Misses = misses
	stats.Tracked = true
	return stats
}

func (b *MemoryBackend) count(hit bool) {
	b.mu.Lock()
	if hit {
		b.hits++
	} else {
		b.misses++
	}
	b.mu.Unlock()
}

var _ ports.CacheBackend = (*MemoryBackend)(nil)
