package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Library source identifiers accepted by LIBRARY_SOURCE.
const (
	LibrarySourceFile     = "file"
	LibrarySourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// DatabaseURL and RedisURL are optional. An empty value disables the
	// connection and the components that depend on it fall back to memory.
	DatabaseURL string
	MaxDBConns  int32
	RedisURL    string

	LibrarySource string
	LibraryPath   string

	// WebDir serves templates, static assets and markdown from disk instead
	// of the embedded copy. Useful while editing pages.
	WebDir string

	CacheVersion       string
	FactInterval       time.Duration
	RateLimitPerMinute int
	StaticMaxAge       int

	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "pretty"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MaxDBConns:         int32(getEnvInt("MAX_DB_CONNS", 4)),
		RedisURL:           getEnv("REDIS_URL", ""),
		LibrarySource:      strings.ToLower(getEnv("LIBRARY_SOURCE", LibrarySourceFile)),
		LibraryPath:        getEnv("LIBRARY_PATH", "data/library.json"),
		WebDir:             getEnv("WEB_DIR", ""),
		CacheVersion:       getEnv("CACHE_VERSION", "chemistry-website-v1"),
		FactInterval:       time.Duration(getEnvInt("FACT_INTERVAL_SECONDS", 5)) * time.Second,
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		StaticMaxAge:       getEnvInt("STATIC_MAX_AGE_SECONDS", 86400),
		AllowedOrigins:     parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// UsePostgresLibrary reports whether the library catalog is read from Postgres.
func (c *Config) UsePostgresLibrary() bool {
	return c.LibrarySource == LibrarySourcePostgres
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
