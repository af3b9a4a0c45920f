package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                  string
	DBDriver              string
	DatabaseURL           string
	CacheType             string
	RedisURL              string
	ListCacheTTL          time.Duration
	SummaryCacheTTL       time.Duration
	LogSink               string
	LogLevel              string
	LogDatabaseURL        string
	GlobalRateLimitPerSec int
	PerIPRateLimitPerSec  int
	ServerReadTimeout     time.Duration
	ServerWriteTimeout    time.Duration
	ServerShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists (optional)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}

	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		DBDriver:              getEnv("DB_DRIVER", "sqlite"),
		DatabaseURL:           getEnv("DATABASE_URL", "file:catalog.db?_pragma=busy_timeout(5000)"),
		CacheType:             getEnv("CACHE_TYPE", "memory"),
		RedisURL:              getEnv("REDIS_URL", "redis://localhost:6379"),
		ListCacheTTL:          getDurationEnv("LIST_CACHE_TTL", 60*time.Second),
		SummaryCacheTTL:       getDurationEnv("SUMMARY_CACHE_TTL", 120*time.Second),
		LogSink:               getEnv("LOG_SINK", "stdout"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogDatabaseURL:        getEnv("LOG_DATABASE_URL", ""),
		GlobalRateLimitPerSec: getIntEnv("GLOBAL_RATE_LIMIT_PER_SEC", 100),
		PerIPRateLimitPerSec:  getIntEnv("PER_IP_RATE_LIMIT_PER_SEC", 10),
		ServerReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		ServerShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	// The log table lives in the catalog database unless told otherwise
	if cfg.LogDatabaseURL == "" {
		cfg.LogDatabaseURL = cfg.DatabaseURL
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getDurationEnv reads a whole number of seconds
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal) * time.Second
		}
	}
	return defaultValue
}
