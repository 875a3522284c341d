package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/cohortly/internal/domain/repository"
)

// TokenStore keeps values as plain Redis strings under a key prefix.
type TokenStore struct {
	rdb    redis.Cmdable
	prefix string
}

func NewTokenStore(rdb redis.Cmdable, prefix string) *TokenStore {
	return &TokenStore{rdb: rdb, prefix: prefix}
}

func (s *TokenStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrNotFound
	}
	return v, err
}

func (s *TokenStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *TokenStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}
