package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Cache  CacheConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
}

type MongoConfig struct {
	URL            string
	DBName         string
	ConnectTimeout time.Duration
}

// CacheConfig selects and tunes the cache backend. Backend is an explicit
// deployment decision ("memory" or "redis"); there is no silent fallback
// from one to the other at runtime.
type CacheConfig struct {
	Backend  string
	RedisURL string
	// DefaultTTL applies to filtered listings and other multi-document
	// read paths.
	DefaultTTL time.Duration
	// ItemTTL applies to single-document read paths, which change less
	// frequently than listings.
	ItemTTL time.Duration
	// OpTimeout bounds every remote cache operation. A timeout is treated
	// as a miss, never surfaced to the request path.
	OpTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "8080"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			AllowedOrigins: getSliceEnv("ALLOWED_ORIGINS", []string{"*"}),
			Environment:    getEnv("ENVIRONMENT", "development"),
		},
		Mongo: MongoConfig{
			URL:            getEnv("MONGO_URL", "mongodb://localhost:27017"),
			DBName:         getEnv("DB_NAME", "techstore"),
			ConnectTimeout: getDurationEnv("MONGO_CONNECT_TIMEOUT", 5*time.Second),
		},
		Cache: CacheConfig{
			Backend:    getEnv("CACHE_BACKEND", "memory"),
			RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379"),
			DefaultTTL: getDurationEnv("CACHE_DEFAULT_TTL", 5*time.Minute),
			ItemTTL:    getDurationEnv("CACHE_ITEM_TTL", 10*time.Minute),
			OpTimeout:  getDurationEnv("CACHE_OP_TIMEOUT", 250*time.Millisecond),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
