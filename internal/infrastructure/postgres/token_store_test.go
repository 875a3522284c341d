package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/cohortly/internal/domain/repository"
	"github.com/oksasatya/cohortly/pkg/helpers"
)

// Runs against a real database: COHORTLY_TEST_PG_DSN=postgres://...
func TestTokenStore(t *testing.T) {
	dsn := os.Getenv("COHORTLY_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("COHORTLY_TEST_PG_DSN not set")
	}
	require.NoError(t, RunMigrations(dsn, helpers.NopLogger()))

	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, 2, 1, time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	s := NewTokenStore(pool)
	key := "test:" + t.Name()
	t.Cleanup(func() { _ = s.Delete(context.Background(), key) })

	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, s.Set(ctx, key, "one"))
	require.NoError(t, s.Set(ctx, key, "two"))
	v, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "two", v)

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
