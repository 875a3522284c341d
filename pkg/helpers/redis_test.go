package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name"`
}

func TestRedisJSONHelpers(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	defer func() { _ = rdb.Close() }()
	ctx := context.Background()

	require.NoError(t, RedisSetJSON(ctx, rdb, "k:1", sample{Name: "one"}, time.Minute))
	require.NoError(t, RedisSetJSON(ctx, rdb, "k:2", sample{Name: "two"}, 0))
	require.NoError(t, RedisSetJSON(ctx, rdb, "other", sample{Name: "three"}, 0))

	var got sample
	ok, err := RedisGetJSON(ctx, rdb, "k:1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one", got.Name)

	require.NoError(t, RedisDelPrefix(ctx, rdb, "k:"))

	ok, err = RedisGetJSON(ctx, rdb, "k:2", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("other"))
}

func TestRedisDelPrefix_MatchesLiterally(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	defer func() { _ = rdb.Close() }()
	ctx := context.Background()

	for _, k := range []string{`q:a*b/1`, `q:aXb/1`, `q:a?c/1`, `q:abc/1`, `q:[x]/1`, `q:x/1`, `q:a\b/1`} {
		require.NoError(t, mr.Set(k, "v"))
	}

	require.NoError(t, RedisDelPrefix(ctx, rdb, `q:a*b/`))
	require.NoError(t, RedisDelPrefix(ctx, rdb, `q:a?c/`))
	require.NoError(t, RedisDelPrefix(ctx, rdb, `q:[x]/`))
	require.NoError(t, RedisDelPrefix(ctx, rdb, `q:a\b/`))

	assert.False(t, mr.Exists(`q:a*b/1`))
	assert.False(t, mr.Exists(`q:a?c/1`))
	assert.False(t, mr.Exists(`q:[x]/1`))
	assert.False(t, mr.Exists(`q:a\b/1`))
	assert.True(t, mr.Exists(`q:aXb/1`))
	assert.True(t, mr.Exists(`q:abc/1`))
	assert.True(t, mr.Exists(`q:x/1`))
}
