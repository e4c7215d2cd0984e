package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Persistence slot
	StorageDriver string // "file", "sql", "s3", "redis" or "memory"
	StorageKey    string // Name of the slot holding the goal collection
	StoragePath   string // File driver only

	// Database (sql driver, default: sqlite)
	DBDriver     string
	DBConnection string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Forms
	SubmitDelay time.Duration // Simulated latency before a form submission commits

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Goalboard"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "8090"),

		// Persistence
		StorageDriver: envString("STORAGE_DRIVER", "file"),
		StorageKey:    envString("STORAGE_KEY", "goals"),
		StoragePath:   envString("STORAGE_PATH", "./data/goals.json"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/goals.db?_pragma=journal_mode(WAL)"),

		// Storage
		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", "goalboard"),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers

		// Redis
		RedisAddr:     envString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: envString("REDIS_PASSWORD", ""),
		RedisDB:       envInt("REDIS_DB", 0),

		// Forms
		SubmitDelay: envDuration("SUBMIT_DELAY", 1*time.Second),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	validate(cfg)

	return cfg
}

// validate stops startup on settings that can never work.
func validate(cfg *Config) {
	switch cfg.StorageDriver {
	case "file", "sql", "s3", "redis", "memory":
	default:
		slog.Error("config unknown storage driver",
			"key", "STORAGE_DRIVER",
			"value", cfg.StorageDriver,
			"hint", "use one of file, sql, s3, redis, memory")
		os.Exit(1)
	}

	if cfg.StorageDriver == "s3" {
		envRequired("S3_BUCKET")
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Debug reports whether verbose diagnostics were requested regardless of environment.
func (c *Config) Debug() bool {
	return envBool("DEBUG", c.IsDevelopment())
}

// Sanitized returns a copy of the config with only public/safe fields.
// Credentials and connection strings are excluded.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:       c.AppName,
		AppEnv:        c.AppEnv,
		Port:          c.Port,
		StorageDriver: c.StorageDriver,
		StorageKey:    c.StorageKey,
		SubmitDelay:   c.SubmitDelay,
	}
}
