package memory

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oksasatya/cohortly/internal/domain/repository"
)

// QueryCache is a bounded LRU of query results.
type QueryCache struct {
	entries *lru.Cache[string, repository.CacheEntry]
}

func NewQueryCache(size int) (*QueryCache, error) {
	if size <= 0 {
		size = 256
	}
	c, err := lru.New[string, repository.CacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &QueryCache{entries: c}, nil
}

func (c *QueryCache) Get(_ context.Context, key string) (repository.CacheEntry, bool, error) {
	e, ok := c.entries.Get(key)
	return e, ok, nil
}

func (c *QueryCache) Set(_ context.Context, key string, entry repository.CacheEntry) error {
	c.entries.Add(key, entry)
	return nil
}

func (c *QueryCache) DeletePrefix(_ context.Context, prefix string) error {
	for _, k := range c.entries.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.entries.Remove(k)
		}
	}
	return nil
}

func (c *QueryCache) Len() int { return c.entries.Len() }
