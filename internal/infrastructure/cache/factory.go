package cache

import (
	"github.com/sirupsen/logrus"

	"github.com/techstore3d/backend/configs"
	"github.com/techstore3d/backend/internal/core/ports"
)

// NewBackend constructs the backend named by the configuration. The choice
// is deliberate and made once at startup; an unrecognized name gets the
// in-process backend with a warning rather than a hidden remote dependency.
func NewBackend(cfg *configs.CacheConfig, logger *logrus.Logger) ports.CacheBackend {
	switch cfg.Backend {
	case "redis":
		return NewRedisBackend(cfg.RedisURL, cfg.OpTimeout, logger)
	case "", "memory":
		return NewMemoryBackend(logger)
	default:
		if logger != nil {
			logger.WithField("backend", cfg.Backend).Warn("cache: unknown backend, using in-memory")
		}
		return NewMemoryBackend(logger)
	}
}
