package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cohortly/config"
	"github.com/oksasatya/cohortly/internal/container"
	"github.com/oksasatya/cohortly/internal/infrastructure/memory"
	"github.com/oksasatya/cohortly/internal/router"
	"github.com/oksasatya/cohortly/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-sandbox", cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Redis only backs the write rate limit
	var rdb *redis.Client
	if cfg.SandboxWriteLimit > 0 {
		rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, write rate limit disabled")
			_ = rdb.Close()
			rdb = nil
		} else {
			defer func() { _ = rdb.Close() }()
		}
	}

	// GCS stores profile images; without it the sandbox only records a path
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs unavailable, profile images will not be stored")
		} else {
			defer func() { _ = gcsClient.Close() }()
			container.SetGCS(gcsClient)
		}
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	repo := memory.NewSeededSandboxRepository()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)
	container.SetSandboxRepo(repo)

	// Dev tokens so the CLI can talk to the sandbox right away
	for _, u := range repo.Users() {
		tok, exp, err := jwtManager.GenerateAccessToken(u.ID, u.Role)
		if err != nil {
			logger.WithError(err).Error("issue dev token")
			continue
		}
		logger.WithFields(logrus.Fields{
			"user_id":    u.ID,
			"role":       u.Role,
			"expires_at": exp.Format(time.RFC3339),
		}).Infof("dev token: %s", tok)
	}

	r := router.NewEngine()

	srv := &http.Server{Addr: ":" + cfg.SandboxPort, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("sandbox starting on :%s", cfg.SandboxPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down sandbox")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("sandbox forced to shutdown: %v", err)
	}
	logger.Info("sandbox exited properly")
}
