package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitGateway implements port.RateLimiter over Redis counters. The
// sliding window is approximated by two fixed windows: the current window's
// count plus the previous window's count weighted by the unelapsed fraction.
// INCR+EXPIRE run pipelined, so increment-and-check is atomic and concurrent
// requests from one client cannot race past the limit.
type RateLimitGateway struct {
	client *redis.Client
	limit  int
	window time.Duration
	// now is swappable for tests.
	now func() time.Time
}

func NewRateLimitGateway(client *redis.Client, limit int, window time.Duration) *RateLimitGateway {
	return &RateLimitGateway{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow consumes one slot for the client. The error return is only for
// Redis failures; the caller decides how to degrade.
func (g *RateLimitGateway) Allow(ctx context.Context, clientKey string) (bool, time.Duration, error) {
	now := g.now()
	windowStart := now.Truncate(g.window)
	elapsed := now.Sub(windowStart)

	curKey := g.bucketKey(clientKey, windowStart)
	prevKey := g.bucketKey(clientKey, windowStart.Add(-g.window))

	var incr *redis.IntCmd
	var prev *redis.StringCmd
	_, err := g.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, curKey)
		pipe.Expire(ctx, curKey, 2*g.window)
		prev = pipe.Get(ctx, prevKey)
		return nil
	})
	if err != nil && err != redis.Nil {
		return false, 0, &DriverError{Op: "RateLimit.Allow", Err: err.Error()}
	}

	current := incr.Val()
	previous, _ := prev.Int64()

	weight := 1.0 - float64(elapsed)/float64(g.window)
	effective := float64(current) + float64(previous)*weight

	if effective > float64(g.limit) {
		retryAfter := g.window - elapsed
		if retryAfter <= 0 {
			retryAfter = time.Second
		}
		return false, retryAfter, nil
	}
	return true, 0, nil
}

func (g *RateLimitGateway) bucketKey(clientKey string, windowStart time.Time) string {
	return fmt.Sprintf("search:rl:%s:%d", clientKey, windowStart.Unix())
}
