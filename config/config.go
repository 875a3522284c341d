package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development against the sandbox.
type Config struct {
	AppName  string
	Env      string // development, staging, production
	LogLevel string

	// Remote API
	APIBaseURL   string
	APITimeout   time.Duration
	APIErrorMode string // endpoint, strict

	// Token storage
	TokenStore      string // file, memory, redis, postgres
	TokenFile       string
	TokenPassphrase string

	// Query cache
	QueryCache       string // memory, redis
	QueryCacheSize   int
	QueryCachePrefix string
	QueryPolling     bool

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Sandbox API
	SandboxPort string
	GinMode     string
	JWTSecret   string
	JWTTTL      time.Duration
	// SandboxWriteLimit caps writes per user and minute; needs Redis, 0 disables.
	SandboxWriteLimit int

	// Profile images; when GCSBucket is empty uploads are not stored
	GCSBucket              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used

	// CORS
	CORSAllowedOrigins string // comma-separated

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName:  getenv("APP_NAME", "cohortly"),
		Env:      getenv("APP_ENV", "development"),
		LogLevel: getenv("LOG_LEVEL", ""),

		APIBaseURL:   strings.TrimRight(getenv("API_BASE_URL", "http://localhost:8080"), "/"),
		APITimeout:   getdur("API_TIMEOUT", 0),
		APIErrorMode: strings.ToLower(getenv("API_ERROR_MODE", "endpoint")),

		TokenStore:      strings.ToLower(getenv("TOKEN_STORE", "file")),
		TokenFile:       getenv("TOKEN_FILE", defaultTokenFile()),
		TokenPassphrase: getenv("TOKEN_PASSPHRASE", ""),

		QueryCache:       strings.ToLower(getenv("QUERY_CACHE", "memory")),
		QueryCacheSize:   getint("QUERY_CACHE_SIZE", 256),
		QueryCachePrefix: getenv("QUERY_CACHE_PREFIX", "cohortly:query:"),
		QueryPolling:     getbool("QUERY_POLLING_ENABLED", true),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "cohortly"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 4)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 1)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		SandboxPort: getenv("SANDBOX_PORT", "8080"),
		GinMode:     getenv("GIN_MODE", "release"),
		JWTSecret:   getenv("JWT_SECRET", "devsandboxsecret"),
		JWTTTL:      getdur("JWT_TTL", 24*time.Hour),

		SandboxWriteLimit: getint("SANDBOX_WRITE_LIMIT", 0),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".cohortly-token"
	}
	return dir + string(os.PathSeparator) + "cohortly" + string(os.PathSeparator) + "token"
}

// PostgresDSN returns a DSN compatible with pgx
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// StrictErrors reports whether every endpoint should propagate classified errors
// instead of applying its own policy.
func (c *Config) StrictErrors() bool {
	return c.APIErrorMode == "strict"
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
