package cache

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/techstore3d/backend/internal/core/ports"
)

// Invalidator clears cached read results after writes. Write paths must
// invalidate the namespaces they affect before reporting success upstream;
// otherwise stale reads survive for up to their original TTL.
type Invalidator struct {
	backend ports.CacheBackend
	logger  *logrus.Logger
}

func NewInvalidator(backend ports.CacheBackend, logger *logrus.Logger) *Invalidator {
	return &Invalidator{backend: backend, logger: logger}
}

// InvalidateNamespace removes every key under namespace (pattern "ns:*").
func (i *Invalidator) InvalidateNamespace(ctx context.Context, namespace string) bool {
	ok := i.backend.ClearMatching(ctx, namespace+":*")
	if i.logger != nil {
		i.logger.WithField("namespace", namespace).Debug("cache: namespace invalidated")
	}
	return ok
}

// InvalidateScoped removes every key under one scope of a namespace
// (pattern "ns:scope:*"), e.g. the cached favorites of a single user.
func (i *Invalidator) InvalidateScoped(ctx context.Context, namespace, scopeID string) bool {
	ok := i.backend.ClearMatching(ctx, namespace+":"+scopeID+":*")
	if i.logger != nil {
		i.logger.WithFields(logrus.Fields{"namespace": namespace, "scope": scopeID}).Debug("cache: scoped invalidation")
	}
	return ok
}
