package repository

import (
	"context"
	"errors"
)

// AuthTokenKey is the fixed key the bearer token is stored under.
const AuthTokenKey = "authToken"

// ErrNotFound is returned by a TokenStore when the key holds no value.
var ErrNotFound = errors.New("key not found")

// TokenStore is the asynchronous key-value storage holding the auth token.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
