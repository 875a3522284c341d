package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/cohortly/internal/domain/repository"
)

// TokenStore keeps values for the lifetime of the process.
type TokenStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewTokenStore() *TokenStore {
	return &TokenStore{values: make(map[string]string)}
}

func (s *TokenStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (s *TokenStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}
