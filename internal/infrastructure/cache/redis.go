package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/techstore3d/backend/internal/core/ports"
)

const (
	defaultOpTimeout   = 250 * time.Millisecond
	connectProbeWindow = 5 * time.Second
)

// RedisBackend delegates to a Redis server. Expiry is Redis's job: entries
// are stored with SET ... EX and never swept locally.
//
// A failed Connect leaves the backend disabled and every operation becomes
// an immediate miss/failure without touching the network. Transport errors
// mid-operation are logged and converted to the same outcome for that call;
// they do not change the connection state.
type RedisBackend struct {
	mu        sync.RWMutex
	client    *redis.Client
	connected bool

	url       string
	opTimeout time.Duration
	logger    *logrus.Logger
}

func NewRedisBackend(url string, opTimeout time.Duration, logger *logrus.Logger) *RedisBackend {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &RedisBackend{url: url, opTimeout: opTimeout, logger: logger}
}

// Connect opens the client and probes it with PING. On failure the backend
// stays disconnected; the error is returned so the caller can log it, but
// the process is expected to keep running without a cache.
func (b *RedisBackend) Connect(ctx context.Context) error {
	opt, err := redis.ParseURL(b.url)
	if err != nil {
		b.warnDisabled(err)
		return err
	}
	client := redis.NewClient(opt)

	probeCtx, cancel := context.WithTimeout(ctx, connectProbeWindow)
	defer cancel()
	if err := client.Ping(probeCtx).Err(); err != nil {
		_ = client.Close()
		b.warnDisabled(err)
		return err
	}

	b.mu.Lock()
	b.client = client
	b.connected = true
	b.mu.Unlock()
	if b.logger != nil {
		b.logger.Info("cache: connected to redis")
	}
	return nil
}

// Disconnect closes the shared connection. Keys stay in Redis with their
// TTLs; the server owns their lifecycle.
func (b *RedisBackend) Disconnect(ctx context.Context) error {
	b.mu.Lock()
	client := b.client
	b.client = nil
	b.connected = false
	b.mu.Unlock()
	if client == nil {
		return nil
	}
	if b.logger != nil {
		b.logger.Info("cache: disconnected from redis")
	}
	return client.Close()
}

func (b *RedisBackend) Connected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.connected
}

func (b *RedisBackend) cmdable() *redis.Client {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.connected {
		return nil
	}
	return b.client
}

func (b *RedisBackend) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.opTimeout)
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool) {
	client := b.cmdable()
	if client == nil {
		return nil, false
	}
	ctx, cancel := b.opCtx(ctx)
	defer cancel()
	value, err := client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observeOp("redis", "get", "miss")
		return nil, false
	}
	if err != nil {
		b.logOpError("get", key, err)
		observeOp("redis", "get", "error")
		return nil, false
	}
	observeOp("redis", "get", "hit")
	return value, true
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	client := b.cmdable()
	if client == nil {
		return false
	}
	ctx, cancel := b.opCtx(ctx)
	defer cancel()
	if ttl <= 0 {
		// Already-expired policy: Redis rejects non-positive TTLs, so an
		// overwriting set with ttl <= 0 removes the key instead.
		if err := client.Del(ctx, key).Err(); err != nil {
			b.logOpError("set", key, err)
			return false
		}
		return true
	}
	if err := client.Set(ctx, key, value, ttl).Err(); err != nil {
		b.logOpError("set", key, err)
		observeOp("redis", "set", "error")
		return false
	}
	observeOp("redis", "set", "ok")
	return true
}

func (b *RedisBackend) Delete(ctx context.Context, key string) bool {
	client := b.cmdable()
	if client == nil {
		return false
	}
	ctx, cancel := b.opCtx(ctx)
	defer cancel()
	if err := client.Del(ctx, key).Err(); err != nil {
		b.logOpError("delete", key, err)
		return false
	}
	return true
}

func (b *RedisBackend) ClearMatching(ctx context.Context, pattern string) bool {
	client := b.cmdable()
	if client == nil {
		return false
	}
	ctx, cancel := b.opCtx(ctx)
	defer cancel()
	if pattern == "*" {
		if err := client.FlushDB(ctx).Err(); err != nil {
			b.logOpError("clear", pattern, err)
			return false
		}
		return true
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err != nil {
		b.logOpError("clear", pattern, err)
		return false
	}
	if len(keys) > 0 {
		if err := client.Del(ctx, keys...).Err(); err != nil {
			b.logOpError("clear", pattern, err)
			return false
		}
	}
	if b.logger != nil {
		b.logger.WithFields(logrus.Fields{"pattern": pattern, "removed": len(keys)}).Debug("cache: cleared matching keys")
	}
	return true
}

// Stats reports whatever the server exposes: DBSIZE for the key count and,
// when INFO is available, used_memory and keyspace hit/miss counters. A
// server that does not expose the counters is reported as untracked rather
// than as zero hits.
func (b *RedisBackend) Stats(ctx context.Context) ports.CacheStats {
	stats := ports.CacheStats{Backend: "redis", Status: ports.CacheStatusDisconnected}
	client := b.cmdable()
	if client == nil {
		return stats
	}
	ctx, cancel := b.opCtx(ctx)
	defer cancel()

	stats.Status = ports.CacheStatusConnected
	if keys, err := client.DBSize(ctx).Result(); err == nil {
		stats.Keys = keys
	} else {
		b.logOpError("stats", "dbsize", err)
	}
	info, err := client.Info(ctx, "memory", "stats").Result()
	if err != nil {
		return stats
	}
	fields := parseInfo(info)
	if v, ok := fields["used_memory"]; ok {
		stats.MemoryBytes, _ = strconv.ParseInt(v, 10, 64)
	}
	hits, hasHits := fields["keyspace_hits"]
	misses, hasMisses := fields["keyspace_misses"]
	if hasHits && hasMisses {
		stats.Hits, _ = strconv.ParseInt(hits, 10, 64)
		stats.Misses, _ = strconv.ParseInt(misses, 10, 64)
		stats.Tracked = true
	}
	return stats
}

// parseInfo flattens an INFO response into key/value pairs.
func parseInfo(info string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, ":"); ok {
			fields[k] = v
		}
	}
	return fields
}

func (b *RedisBackend) logOpError(op, subject string, err error) {
	if b.logger == nil {
		return
	}
	b.logger.WithFields(logrus.Fields{"op": op, "subject": subject}).WithError(err).Error("cache: redis operation failed")
}

func (b *RedisBackend) warnDisabled(err error) {
	b.mu.Lock()
	b.connected = false
	b.client = nil
	b.mu.Unlock()
	if b.logger != nil {
		b.logger.WithError(err).Warn("cache: redis connection failed, caching disabled")
	}
}

var _ ports.CacheBackend = (*RedisBackend)(nil)
