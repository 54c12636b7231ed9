package bootstrap

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"search-hub/config"
	"search-hub/internal/auth"
	authmw "search-hub/internal/auth/middleware"
	"search-hub/middleware"
	"search-hub/port"
	"search-hub/rest"
	"search-hub/usecase"
)

// newHTTPServer creates the REST HTTP server.
func newHTTPServer(
	appCfg *config.Config,
	search *usecase.SearchUsecase,
	suggest *usecase.SuggestUsecase,
	popular *usecase.PopularQueriesUsecase,
	feedback *usecase.FeedbackUsecase,
	index *usecase.IndexContentUsecase,
	reindex *usecase.ReindexUsecase,
	store port.IndexStore,
	rateLimiter port.RateLimiter,
	tokenService *auth.TokenService,
) *http.Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.OTelStatus())

	handler := rest.NewHandler(search, suggest, popular, feedback, index, reindex, store)

	rateLimitMw := middleware.NewRateLimitMiddleware(rateLimiter, appCfg.RateLimit.PerWindow, appCfg.RateLimit.Window)
	serviceAuthMw := authmw.NewAuthMiddleware(tokenService)

	rest.RegisterRoutes(e, handler, rateLimitMw.Limit(), serviceAuthMw.RequireServiceAuth())

	return &http.Server{
		Addr:              appCfg.HTTP.Addr,
		Handler:           e,
		ReadHeaderTimeout: appCfg.HTTP.ReadHeaderTimeout,
	}
}
