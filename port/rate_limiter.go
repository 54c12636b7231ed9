package port

import (
	"context"
	"time"
)

// RateLimiter bounds query volume per client within a sliding window. The
// increment-and-check must be atomic; a read-then-write counter lets
// concurrent requests from one client slip past the limit.
type RateLimiter interface {
	// Allow consumes one request slot for the client. When the limit is
	// exhausted it returns false and a retry hint.
	Allow(ctx context.Context, clientKey string) (bool, time.Duration, error)
}
