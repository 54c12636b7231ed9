package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the public, internal and operational endpoints.
// Public read endpoints sit behind the rate limiter; internal write hooks
// sit behind service auth instead and are never rate-limited.
func RegisterRoutes(e *echo.Echo, h *Handler, rateLimit, serviceAuth echo.MiddlewareFunc) {
	v1 := e.Group("/v1")

	v1.GET("/search", h.Search, rateLimit)
	v1.GET("/search/suggest", h.Suggest, rateLimit)
	v1.GET("/search/popular", h.Popular, rateLimit)
	v1.POST("/search/feedback", h.Feedback, rateLimit)

	internal := v1.Group("/internal", serviceAuth)
	internal.POST("/content/saved", h.ContentSaved)
	internal.POST("/content/deleted", h.ContentDeleted)
	internal.POST("/reindex", h.Reindex)

	v1.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
