// Package di assembles components whose concrete wiring depends on which
// backing services are configured.
package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"foro_backend/internal/feature/admin/usecase"
	"foro_backend/internal/platform/cache"
)

// Invalidator drops a cached directory snapshot after a user mutation.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// noopInvalidator backs the uncached directory, which has nothing to drop.
type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) {}

// NewDirectory returns the user directory the admin console reads from,
// plus the invalidator user writers must call. With Redis configured the
// remote snapshot is cached; otherwise every load goes straight to the
// backend and invalidation is a no-op.
func NewDirectory(rdb *redis.Client, remote usecase.Directory, ttl time.Duration, log zerolog.Logger) (usecase.Directory, Invalidator) {
	if rdb != nil {
		cached := cache.NewCachingDirectory(rdb, ttl, remote, "directory", log)
		return cached, cached
	}
	return remote, noopInvalidator{}
}
