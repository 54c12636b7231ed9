package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"search-hub/adapter"
	"search-hub/config"
	"search-hub/consumer"
	"search-hub/driver"
	"search-hub/format"
	"search-hub/gateway"
	"search-hub/internal/auth"
	"search-hub/logger"
	"search-hub/normalize"
	"search-hub/sanitize"
	"search-hub/score"
	"search-hub/usecase"
	appOtel "search-hub/utils/otel"
)

// App holds all components of the search-hub service.
type App struct {
	httpServer    *http.Server
	driverClose   func()
	analytics     *gateway.AnalyticsGateway
	redisConsumer *consumer.Consumer
	otelShutdown  appOtel.ShutdownFunc
}

// Run initializes all components and starts the service.
// It blocks until ctx is cancelled, then performs graceful shutdown.
func Run(ctx context.Context) error {
	// ── OpenTelemetry ──
	otelCfg := appOtel.ConfigFromEnv()
	otelShutdown, err := appOtel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// ── Logger ──
	logger.InitWithOTel(otelCfg.Enabled)
	logger.Logger.Info("Starting search-hub",
		"service", otelCfg.ServiceName,
		"otel_enabled", otelCfg.Enabled,
	)

	// ── Load config ──
	appCfg, err := config.Load()
	if err != nil {
		logger.Logger.Error("Failed to load config", "err", err)
		return err
	}

	// ── Scoring config ──
	loadConfigUsecase := usecase.NewLoadConfigUsecase(gateway.NewConfigGateway())
	cfgResult, err := loadConfigUsecase.Execute(ctx)
	if err != nil {
		logger.Logger.Error("Failed to load scoring config", "err", err)
		return err
	}

	// ── Normalizer ──
	normalizer, err := normalize.NewNormalizer(normalize.Config{
		MaxQueryLength:  1024,
		MaxTerms:        appCfg.Search.MaxTerms,
		DefaultPageSize: appCfg.Search.DefaultPageSize,
		MaxPageSize:     appCfg.Search.MaxPageSize,
	})
	if err != nil {
		logger.Logger.Error("Failed to initialize normalizer", "err", err)
		return err
	}

	// ── Drivers (infrastructure layer) ──
	contentDriver, err := initContentDriver(ctx)
	if err != nil {
		logger.Logger.Error("Failed to initialize content driver", "err", err)
		return err
	}
	driverClose := contentDriver.Close

	redisClient, err := driver.NewRedisClient(ctx)
	if err != nil {
		logger.Logger.Error("Failed to connect to Redis", "err", err)
		driverClose()
		return err
	}

	store := driver.NewInMemoryIndexStore()

	// ── Gateways (anti-corruption layer) ──
	contentSource := gateway.NewContentSourceGateway(contentDriver)
	rateLimiter := gateway.NewRateLimitGateway(redisClient, appCfg.RateLimit.PerWindow, appCfg.RateLimit.Window)
	suggestCache := gateway.NewSuggestCacheGateway(redisClient, appCfg.Suggest.CacheTTL)
	analytics := gateway.NewAnalyticsGateway(redisClient, 0)
	analytics.Start(ctx)
	popularity := gateway.NewPopularityGateway(redisClient)

	// ── Adapters ──
	pipeline := sanitize.NewPipeline(appCfg.Search.FieldMaxLength)
	registry := adapter.NewRegistry(
		adapter.NewArticleAdapter(store, pipeline),
		adapter.NewToolAdapter(store, pipeline),
		adapter.NewResourceAdapter(store, pipeline),
		adapter.NewProfileAdapter(store, pipeline),
	)

	scorer := score.NewScorer(cfgResult.Scoring, registry.FieldWeights())
	formatter := format.NewFormatter(appCfg.Search.ExcerptDisplayLength)

	// ── Use cases (application layer) ──
	searchUsecase := usecase.NewSearchUsecase(normalizer, registry, scorer, formatter, analytics)
	suggestUsecase := usecase.NewSuggestUsecase(normalizer, registry, suggestCache, appCfg.Suggest.MinPrefix, appCfg.Suggest.MaxResults)
	popularUsecase := usecase.NewPopularQueriesUsecase(analytics)
	feedbackUsecase := usecase.NewFeedbackUsecase(popularity, store)
	indexUsecase := usecase.NewIndexContentUsecase(registry, store, popularity, contentSource)
	reindexUsecase := usecase.NewReindexUsecase(registry, store, popularity, contentSource, appCfg.Search.IndexBatchSize, config.ReindexWorkers)

	// ── Service auth for internal endpoints ──
	authCfg, err := auth.ConfigFromEnv()
	if err != nil {
		logger.Logger.Error("Failed to load service auth config", "err", err)
		driverClose()
		return err
	}
	tokenService := auth.NewTokenService(authCfg)

	// ── Redis Streams Consumer ──
	var redisConsumer *consumer.Consumer
	consumerCfg := consumer.ConfigFromEnv()
	if consumerCfg.Enabled {
		eventHandler := consumer.NewContentEventHandler(indexUsecase, logger.Logger)
		redisConsumer, err = consumer.NewConsumer(consumerCfg, eventHandler, logger.Logger)
		if err != nil {
			logger.Logger.Error("Failed to create Redis Streams consumer", "err", err)
		} else {
			if err := redisConsumer.Start(ctx); err != nil {
				logger.Logger.Error("Failed to start Redis Streams consumer", "err", err)
			} else {
				logger.Logger.Info("Redis Streams consumer started",
					"stream", consumerCfg.StreamKey,
					"group", consumerCfg.GroupName,
				)
			}
		}
	} else {
		logger.Logger.Info("Redis Streams consumer disabled")
	}

	// ── Startup backfill ──
	go runStartupBackfill(ctx, reindexUsecase)

	// ── Server ──
	app := &App{
		httpServer:    newHTTPServer(appCfg, searchUsecase, suggestUsecase, popularUsecase, feedbackUsecase, indexUsecase, reindexUsecase, store, rateLimiter, tokenService),
		driverClose:   driverClose,
		analytics:     analytics,
		redisConsumer: redisConsumer,
		otelShutdown:  otelShutdown,
	}

	go func() {
		logger.Logger.Info("http listen", "addr", appCfg.HTTP.Addr)
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("http", "err", err)
		}
	}()

	// ── Wait for shutdown signal ──
	<-ctx.Done()
	app.shutdown()
	return nil
}

// shutdown performs graceful shutdown of all components.
func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("http shutdown error", "err", err)
	}
	if a.redisConsumer != nil {
		a.redisConsumer.Stop()
	}
	if a.analytics != nil {
		a.analytics.Stop()
	}
	if a.driverClose != nil {
		a.driverClose()
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := a.otelShutdown(otelCtx); err != nil {
		fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
	}
}

// newRetryBackoff creates an exponential backoff policy for the startup
// backfill retries.
func newRetryBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 5 * time.Second
	bo.MaxInterval = 5 * time.Minute
	bo.Multiplier = 2
	return bo
}

// runStartupBackfill builds the initial index from the content database.
// The service serves requests while the backfill runs; searches against a
// partially built index simply see fewer items.
func runStartupBackfill(ctx context.Context, reindexUsecase *usecase.ReindexUsecase) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logger.Error("startup backfill panic", "err", r)
		}
	}()

	logger.Logger.Info("starting backfill")

	bo := newRetryBackoff()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		result, err := reindexUsecase.Execute(ctx)
		if err != nil {
			delay := bo.NextBackOff()
			logger.Logger.Error("backfill error, retrying", "err", err, "retry_in", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
			continue
		}

		logger.Logger.Info("backfill complete",
			"indexed", result.IndexedCount,
			"skipped", result.SkippedCount,
			"duration", result.Duration,
		)
		return
	}
}
