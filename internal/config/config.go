package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string
	Port            string
	Env             string
	GinMode         string
	LogLevel        string
	StorageDriver   string
	DatabasePath    string
	DatabaseURL     string
	RedisURL        string
	CacheTTL        time.Duration
	SeedDemoData    bool
	SessionSecret   string
	AdminPassword   string
	AdminHash       string
	AdminEnforce    bool
	CORSOrigins     []string
	UploadDir       string
	UploadURLPath   string
	TrashRetention  time.Duration
	JanitorInterval time.Duration
	ShutdownTimeout time.Duration
}

// Load 读取 .env（若存在）与环境变量，并为缺失项提供默认值。
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (AppConfig, error) {
	var errs []error

	port := getEnv("PORT", "8080")
	driver := strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory))

	cfg := AppConfig{
		Port:          port,
		ListenAddr:    getEnv("LISTEN_ADDR", ":"+port),
		Env:           getEnv("APP_ENV", "production"),
		GinMode:       getEnv("GIN_MODE", "release"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StorageDriver: driver,
		DatabasePath:  getEnv("DATABASE_PATH", "portfolio.db"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", "portfolio-dev-secret"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminHash:     getEnv("ADMIN_PASSWORD_HASH", ""),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		UploadDir:     getEnv("UPLOAD_DIR", "data/uploads"),
		UploadURLPath: getEnv("UPLOAD_URL_PATH", "/static/uploads"),
	}

	cfg.CacheTTL = getDuration("CACHE_TTL", time.Minute, &errs)
	cfg.SeedDemoData = getBool("SEED_DEMO_DATA", driver == StorageMemory, &errs)
	cfg.AdminEnforce = getBool("ADMIN_ENFORCE", false, &errs)
	cfg.TrashRetention = getDuration("TRASH_RETENTION", 30*24*time.Hour, &errs)
	cfg.JanitorInterval = getDuration("TRASH_JANITOR_INTERVAL", time.Hour, &errs)
	cfg.ShutdownTimeout = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &errs)

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return AppConfig{}, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate checks combinations that cannot be expressed by defaults.
func (c AppConfig) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.AdminEnforce && c.AdminPassword == "" && c.AdminHash == "" {
		return fmt.Errorf("ADMIN_ENFORCE requires ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}
	return nil
}

// IsDevelopment reports whether APP_ENV selects development mode.
func (c AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool, errs *[]error) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid boolean %q", key, raw))
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
