// Package cache decorates the user directory with a redis snapshot cache.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"foro_backend/internal/feature/admin/usecase"
	"foro_backend/internal/feature/auth/domain/entity"
)

// CachingDirectory wraps a Directory with a redis-backed snapshot so
// repeated console refreshes do not hammer the backend. With a nil redis
// client every call passes straight through.
type CachingDirectory struct {
	inner     usecase.Directory
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	log       zerolog.Logger
}

var _ usecase.Directory = (*CachingDirectory)(nil)

// NewCachingDirectory decorates inner with a redis cache. ttl falls back to
// 5 minutes when zero or negative; an empty namespace becomes "directory".
func NewCachingDirectory(rdb *redis.Client, ttl time.Duration, inner usecase.Directory, namespace string, log zerolog.Logger) *CachingDirectory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "directory"
	}
	return &CachingDirectory{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		log:       log,
	}
}

func (c *CachingDirectory) key() string {
	return c.namespace + ":users"
}

// ListUsers serves the snapshot from redis when present, falling back to the
// inner directory and repopulating on a miss. Cache failures degrade to the
// inner call; they never fail the listing.
func (c *CachingDirectory) ListUsers(ctx context.Context) ([]entity.User, error) {
	if c.rdb == nil {
		return c.inner.ListUsers(ctx)
	}

	raw, err := c.rdb.Get(ctx, c.key()).Bytes()
	if err == nil {
		var users []entity.User
		if err := json.Unmarshal(raw, &users); err == nil {
			return users, nil
		}
		// Corrupt entry: fall through to the inner fetch and overwrite.
		c.log.Warn().Str("key", c.key()).Msg("discarding corrupt directory cache entry")
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Msg("directory cache read failed")
	}

	users, err := c.inner.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(users); err == nil {
		if err := c.rdb.Set(ctx, c.key(), encoded, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Msg("directory cache write failed")
		}
	}
	return users, nil
}

// Invalidate drops the cached snapshot. Called after any user mutation that
// goes through the remote gateway.
func (c *CachingDirectory) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key()).Err(); err != nil {
		c.log.Warn().Err(err).Msg("directory cache invalidation failed")
	}
}
