package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultJWTSecret = "change-me-in-production"

// Config holds the whole application configuration, populated from environment variables
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	Admin  AdminConfig
	Cache  CacheConfig
	MinIO  MinIOConfig
	Worker WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	CORSOrigins []string

	// Proxies whose X-Forwarded-For is believed; empty trusts none
	TrustedProxies []string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// AdminConfig configures the shared-password admin gate
type AdminConfig struct {
	Password     string // plain password, hashed at startup when PasswordHash is empty
	PasswordHash string // bcrypt hash
	JWTSecret    string
	SessionTTL   time.Duration
	LoginRate    time.Duration // one login attempt per LoginRate per client IP
	LoginBurst   int
	CookieSecure bool
}

type CacheConfig struct {
	TTL time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type WorkerConfig struct {
	Concurrency int
	ReportCron  string
}

// Load reads config from environment variables
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Book Inventory"),
			Environment: env,
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS", nil),

			TrustedProxies: getEnvList("TRUSTED_PROXIES", nil),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			Password:     getEnv("ADMIN_PASSWORD", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("ADMIN_JWT_SECRET", defaultJWTSecret),
			SessionTTL:   getEnvDuration("ADMIN_SESSION_TTL", time.Hour),
			LoginRate:    getEnvDuration("ADMIN_LOGIN_RATE", 12*time.Second),
			LoginBurst:   getEnvInt("ADMIN_LOGIN_BURST", 5),
			CookieSecure: env == "production",
		},
		Cache: CacheConfig{
			TTL: getEnvDuration("CACHE_TTL", 300*time.Second),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "inventory"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
			ReportCron:  getEnv("REPORT_CRON", "0 1 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config. Production is strict about secrets.
func (c *Config) Validate() error {
	if c.Admin.SessionTTL <= 0 {
		return errors.New("ADMIN_SESSION_TTL must be positive")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}

	if c.App.Environment == "production" {
		if c.Admin.JWTSecret == defaultJWTSecret {
			return errors.New("ADMIN_JWT_SECRET must be set in production")
		}
		if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
			return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set in production")
		}
	}

	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		log.Warn().Msg("no admin password configured; admin login is disabled")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
