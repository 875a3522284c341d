package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cohortly/config"
	"github.com/oksasatya/cohortly/internal/application"
	"github.com/oksasatya/cohortly/internal/application/query"
	"github.com/oksasatya/cohortly/internal/domain/repository"
	"github.com/oksasatya/cohortly/internal/infrastructure/httpapi"
	"github.com/oksasatya/cohortly/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/cohortly/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/cohortly/internal/infrastructure/redis"
	"github.com/oksasatya/cohortly/internal/infrastructure/securefile"
	"github.com/oksasatya/cohortly/pkg/helpers"
)

const redisTokenPrefix = "cohortly:"

// runtime holds everything one CLI invocation needs.
type runtime struct {
	cfg     *config.Config
	logger  *logrus.Logger
	tokens  repository.TokenStore
	queries *query.Client
	svc     *application.Service
	out     io.Writer

	rdb  *redis.Client
	pool *pgxpool.Pool
}

func newRuntime(ctx context.Context, cfg *config.Config, out io.Writer) (*runtime, error) {
	rt := &runtime{
		cfg:    cfg,
		logger: helpers.NewLoggerTo(os.Stderr, cfg.AppName, cfg.Env, cfg.LogLevel),
		out:    out,
	}

	tokens, err := rt.tokenStore(ctx)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.tokens = tokens

	cache, err := rt.queryCache()
	if err != nil {
		rt.Close()
		return nil, err
	}

	api := httpapi.New(httpapi.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Tokens:  httpapi.NewStoreTokenSource(tokens),
		Logger:  rt.logger,
		Strict:  cfg.StrictErrors(),
	})
	rt.queries = query.NewClient(query.Config{Cache: cache, Logger: rt.logger, Polling: cfg.QueryPolling})
	rt.svc = application.NewService(api, rt.queries, rt.logger)
	return rt, nil
}

func (rt *runtime) redis() *redis.Client {
	if rt.rdb == nil {
		rt.rdb = helpers.NewRedisClient(rt.cfg.RedisAddr, rt.cfg.RedisPassword, rt.cfg.RedisDB)
	}
	return rt.rdb
}

func (rt *runtime) tokenStore(ctx context.Context) (repository.TokenStore, error) {
	switch rt.cfg.TokenStore {
	case "file", "":
		return securefile.NewTokenStore(rt.cfg.TokenFile, rt.cfg.TokenPassphrase), nil
	case "memory":
		return memory.NewTokenStore(), nil
	case "redis":
		return redisinfra.NewTokenStore(rt.redis(), redisTokenPrefix), nil
	case "postgres":
		if err := pginfra.RunMigrations(rt.cfg.PostgresDSN(), rt.logger); err != nil {
			return nil, fmt.Errorf("migrate token store: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, rt.cfg.PostgresDSN(), rt.cfg.DBMaxConns, rt.cfg.DBMinConns, rt.cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("connect token store: %w", err)
		}
		rt.pool = pool
		return pginfra.NewTokenStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown TOKEN_STORE %q", rt.cfg.TokenStore)
	}
}

func (rt *runtime) queryCache() (repository.QueryCache, error) {
	switch rt.cfg.QueryCache {
	case "memory", "":
		return memory.NewQueryCache(rt.cfg.QueryCacheSize)
	case "redis":
		return redisinfra.NewQueryCache(rt.redis(), rt.cfg.QueryCachePrefix, 0), nil
	default:
		return nil, fmt.Errorf("unknown QUERY_CACHE %q", rt.cfg.QueryCache)
	}
}

func (rt *runtime) Close() {
	if rt.rdb != nil {
		_ = rt.rdb.Close()
	}
	if rt.pool != nil {
		rt.pool.Close()
	}
}
