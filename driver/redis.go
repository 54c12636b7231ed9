package driver

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"search-hub/logger"
)

// NewRedisClient connects to Redis with retry. Redis backs the rate-limit
// counters, the suggestion cache, the analytics views and the popularity
// hash; the service refuses to start without it.
func NewRedisClient(ctx context.Context) (*redis.Client, error) {
	const maxRetries = 5
	const retryDelay = 5 * time.Second

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, &DriverError{Op: "NewRedisClient", Err: "failed to parse REDIS_URL: " + err.Error()}
	}

	client := redis.NewClient(opts)

	var pingErr error
	for i := range maxRetries {
		pingErr = client.Ping(ctx).Err()
		if pingErr == nil {
			logger.Logger.Info("Connected to Redis successfully")
			return client, nil
		}
		logger.Logger.Warn("Redis not ready, retrying", "attempt", i+1, "max", maxRetries, "err", pingErr)
		if i < maxRetries-1 {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, &DriverError{Op: "NewRedisClient", Err: "failed to connect to Redis after retries: " + pingErr.Error()}
}
