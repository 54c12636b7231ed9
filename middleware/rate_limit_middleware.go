// Package middleware provides HTTP middleware for search-hub: per-client
// rate limiting and OpenTelemetry span status recording.
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"search-hub/logger"
	"search-hub/metrics"
	"search-hub/port"
)

// RateLimitMiddleware bounds query volume per client. The Redis-backed
// limiter is authoritative; when Redis is unreachable the middleware
// degrades to an in-process token-bucket per client instead of failing
// open entirely or closing reads.
type RateLimitMiddleware struct {
	limiter port.RateLimiter
	limit   int
	window  time.Duration

	mu       sync.Mutex
	fallback map[string]*rate.Limiter
}

func NewRateLimitMiddleware(limiter port.RateLimiter, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter:  limiter,
		limit:    limit,
		window:   window,
		fallback: make(map[string]*rate.Limiter),
	}
}

// Limit is the echo middleware. Client identity is the real client IP
// (X-Real-IP, then X-Forwarded-For, then the socket address).
func (m *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientKey := c.RealIP()

			allowed, retryAfter, err := m.limiter.Allow(c.Request().Context(), clientKey)
			if err != nil {
				logger.Logger.Warn("rate limiter unavailable, using in-process fallback", "err", err)
				allowed = m.allowFallback(clientKey)
				retryAfter = m.window
			}

			if !allowed {
				metrics.RateLimitRejections.Inc()
				seconds := int(retryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"error":       "rate_limit_exceeded",
					"code":        "RATE_LIMIT_EXCEEDED",
					"message":     "query volume exceeded, slow down",
					"retry_after": seconds,
				})
			}

			return next(c)
		}
	}
}

// allowFallback consults the per-client in-process limiter, creating one on
// first sight. Double-checked under a single mutex; the map only ever grows
// while Redis is down, which is acceptable for a degraded mode.
func (m *RateLimitMiddleware) allowFallback(clientKey string) bool {
	m.mu.Lock()
	limiter, ok := m.fallback[clientKey]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(m.limit)/m.window.Seconds()), m.limit)
		m.fallback[clientKey] = limiter
	}
	m.mu.Unlock()

	return limiter.Allow()
}
