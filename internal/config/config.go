package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv                string
	DBPath                string
	DBDriver              string
	RedisAddr             string
	CacheEnabled          bool
	CacheTTL              time.Duration
	GRPCPort              int
	GRPCReflectionEnabled bool
	HTTPPort              int
	AllowedOrigins        string
	ProjectsFile          string
	FetchTimeout          time.Duration
	FetchConcurrency      int
	SnapshotMaxAge        time.Duration
	KeepSnapshots         int
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		DBPath:                getEnv("DB_PATH", "./data/database.db"),
		DBDriver:              getEnv("DB_DRIVER", "sqlite3"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		CacheEnabled:          getBool("CACHE_ENABLED", true),
		CacheTTL:              getDuration("CACHE_TTL", 10*time.Minute),
		GRPCPort:              getInt("GRPC_PORT", 50051),
		GRPCReflectionEnabled: getBool("GRPC_REFLECTION_ENABLED", false),
		HTTPPort:              getInt("HTTP_PORT", 8080),
		AllowedOrigins:        getEnv("ALLOWED_ORIGINS", "*"),
		ProjectsFile:          getEnv("PROJECTS_FILE", ""),
		FetchTimeout:          getDuration("FETCH_TIMEOUT", 20*time.Second),
		FetchConcurrency:      getInt("FETCH_CONCURRENCY", 4),
		SnapshotMaxAge:        getDuration("SNAPSHOT_MAX_AGE", 5*time.Minute),
		KeepSnapshots:         getInt("KEEP_SNAPSHOTS", 20),
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

// getDuration accepts Go durations ("30s") and bare seconds ("30").
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
