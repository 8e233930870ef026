package existscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CheckFunc is an existence check against a collaborator service.
type CheckFunc func(ctx context.Context, id int64) bool

// Cache decorates an existence check with a Redis-backed positive cache.
// Only confirmed existence is cached: a "does not exist" answer may just mean
// the collaborator was unreachable (fail-closed), so caching it would pin a
// transient outage.
type Cache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	check  CheckFunc
}

// New creates an existence cache. A nil Redis client disables caching and
// every call goes straight to check.
func New(rdb *redis.Client, prefix string, ttl time.Duration, check CheckFunc) *Cache {
	return &Cache{rdb: rdb, prefix: prefix, ttl: ttl, check: check}
}

// Exists answers from cache when possible, falling through to the remote
// check otherwise.
func (c *Cache) Exists(ctx context.Context, id int64) bool {
	if c.rdb == nil {
		return c.check(ctx, id)
	}

	key := fmt.Sprintf("%s:%d", c.prefix, id)
	if _, err := c.rdb.Get(ctx, key).Result(); err == nil {
		return true
	} else if err != redis.Nil {
		log.Debug().Err(err).Str("key", key).Msg("Existence cache read failed")
	}

	exists := c.check(ctx, id)
	if exists {
		if err := c.rdb.Set(ctx, key, "1", c.ttl).Err(); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("Existence cache write failed")
		}
	}
	return exists
}

// Invalidate drops a cached answer, e.g. after a collaborator reported the
// entity gone.
func (c *Cache) Invalidate(ctx context.Context, id int64) {
	if c.rdb == nil {
		return
	}
	key := fmt.Sprintf("%s:%d", c.prefix, id)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Existence cache invalidation failed")
	}
}
