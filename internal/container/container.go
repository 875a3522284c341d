package container

import (
	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cohortly/config"
	"github.com/oksasatya/cohortly/internal/domain/repository"
	"github.com/oksasatya/cohortly/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager
	gcsClient   *storage.Client
	sandboxRepo repository.SandboxRepository
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return config.Load()
}
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger != nil {
		return logger
	}
	return helpers.NopLogger()
}
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}
func SetGCS(s *storage.Client) { gcsClient = s }
func GetGCS() *storage.Client  { return gcsClient }

func SetSandboxRepo(r repository.SandboxRepository) { sandboxRepo = r }
func GetSandboxRepo() repository.SandboxRepository  { return sandboxRepo }
