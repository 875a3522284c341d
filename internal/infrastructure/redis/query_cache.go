package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/cohortly/internal/domain/repository"
	"github.com/oksasatya/cohortly/pkg/helpers"
)

// QueryCache shares query results between processes. Entries expire after ttl
// (zero keeps them until invalidated).
type QueryCache struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewQueryCache(rdb redis.Cmdable, prefix string, ttl time.Duration) *QueryCache {
	return &QueryCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *QueryCache) Get(ctx context.Context, key string) (repository.CacheEntry, bool, error) {
	var e repository.CacheEntry
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, c.prefix+key, &e)
	return e, ok, err
}

func (c *QueryCache) Set(ctx context.Context, key string, entry repository.CacheEntry) error {
	return helpers.RedisSetJSON(ctx, c.rdb, c.prefix+key, entry, c.ttl)
}

func (c *QueryCache) DeletePrefix(ctx context.Context, prefix string) error {
	return helpers.RedisDelPrefix(ctx, c.rdb, c.prefix+prefix)
}
