package repository

import (
	"context"
	"time"
)

// CacheEntry is a cached query payload, stored as JSON.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
}

// QueryCache stores the last successful result of each query key.
type QueryCache interface {
	Get(ctx context.Context, key string) (CacheEntry, bool, error)
	Set(ctx context.Context, key string, entry CacheEntry) error
	// DeletePrefix drops every entry whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}
