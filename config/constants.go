package config

import (
	"os"
	"strconv"
	"time"
)

// Service constants with env var override support.
var (
	IndexBatchSize    = intEnv("INDEX_BATCH_SIZE", 200)
	ReindexRetryDelay = durationEnv("REINDEX_RETRY_DELAY", 1*time.Minute)
	ReindexWorkers    = intEnv("REINDEX_WORKERS", 4)
	HTTPAddr          = stringEnv("HTTP_ADDR", ":9400")
	DBTimeout         = durationEnv("DB_TIMEOUT", 10*time.Second)
	RedisTimeout      = durationEnv("REDIS_TIMEOUT", 5*time.Second)
	ConsumerEnabled   = boolEnv("CONSUMER_ENABLED", false)
)

func stringEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func intEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func durationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func boolEnv(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return defaultVal
}
