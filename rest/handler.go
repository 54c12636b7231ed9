// Package rest exposes the search, autocomplete, analytics and content
// lifecycle endpoints over HTTP. Read-path errors surface to the caller
// with a specific reason; write-path errors are logged and isolated so a
// failed index write never fails the content collaborator's save or delete.
package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"search-hub/domain"
	"search-hub/logger"
	"search-hub/metrics"
	"search-hub/port"
	"search-hub/usecase"
)

// Handler contains all HTTP handlers for search-hub.
type Handler struct {
	search   *usecase.SearchUsecase
	suggest  *usecase.SuggestUsecase
	popular  *usecase.PopularQueriesUsecase
	feedback *usecase.FeedbackUsecase
	index    *usecase.IndexContentUsecase
	reindex  *usecase.ReindexUsecase
	store    port.IndexStore
	started  time.Time
}

// NewHandler creates a new Handler.
func NewHandler(
	search *usecase.SearchUsecase,
	suggest *usecase.SuggestUsecase,
	popular *usecase.PopularQueriesUsecase,
	feedback *usecase.FeedbackUsecase,
	index *usecase.IndexContentUsecase,
	reindex *usecase.ReindexUsecase,
	store port.IndexStore,
) *Handler {
	return &Handler{
		search:   search,
		suggest:  suggest,
		popular:  popular,
		feedback: feedback,
		index:    index,
		reindex:  reindex,
		store:    store,
		started:  time.Now(),
	}
}

// Search handles GET /v1/search.
func (h *Handler) Search(c echo.Context) error {
	start := time.Now()

	rawQuery := c.QueryParam("q")
	categories := c.QueryParams()["category"]
	page := intParam(c, "page", 1)
	pageSize := intParam(c, "page_size", 0)

	out, err := h.search.Execute(c.Request().Context(), rawQuery, categories, page, pageSize, c.RealIP())
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return writeError(c, err)
	}

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, SearchResponse{
		Results:    out.Results,
		Facets:     out.Facets,
		Page:       out.Page,
		PageSize:   out.PageSize,
		TotalCount: out.TotalCount,
	})
}

// Suggest handles GET /v1/search/suggest.
func (h *Handler) Suggest(c echo.Context) error {
	suggestions, err := h.suggest.Execute(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuggestResponse{Suggestions: suggestions})
}

// Popular handles GET /v1/search/popular.
func (h *Handler) Popular(c echo.Context) error {
	queries, err := h.popular.Execute(c.Request().Context(), intParam(c, "limit", 10))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, PopularResponse{Queries: queries})
}

// Feedback handles POST /v1/search/feedback.
func (h *Handler) Feedback(c echo.Context) error {
	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, domain.NewInvalidQueryError("malformed feedback payload"))
	}

	if err := h.feedback.Execute(c.Request().Context(), domain.SourceType(req.SourceType), req.ID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

// ContentSaved handles POST /v1/internal/content/saved, the index's upsert
// hook. Index failures are logged and retried internally; the content
// collaborator's save has already happened and must not be failed here.
func (h *Handler) ContentSaved(c echo.Context) error {
	var req ContentSavedRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, domain.NewInvalidQueryError("malformed content payload"))
	}

	record := domain.ContentRecord{
		ID:           req.ID,
		SourceType:   domain.SourceType(req.SourceType),
		Title:        req.Title,
		Summary:      req.Summary,
		Body:         req.Body,
		Tags:         req.Tags,
		Category:     req.Category,
		Published:    req.Published,
		Featured:     req.Featured,
		CreatedAt:    req.CreatedAt,
		UpdatedAt:    req.UpdatedAt,
		CanonicalURL: req.CanonicalURL,
		Extra:        req.Extra,
	}
	if err := record.Validate(); err != nil {
		return writeError(c, domain.NewInvalidQueryError(err.Error()))
	}

	if err := h.index.ExecuteSaved(c.Request().Context(), record); err != nil {
		logger.Logger.Error("content saved hook: index update failed",
			"source_type", req.SourceType, "id", req.ID, "err", err)
	}
	return c.NoContent(http.StatusAccepted)
}

// ContentDeleted handles POST /v1/internal/content/deleted.
func (h *Handler) ContentDeleted(c echo.Context) error {
	var req ContentDeletedRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, domain.NewInvalidQueryError("malformed content payload"))
	}
	if _, err := domain.ParseSourceType(req.SourceType); err != nil {
		return writeError(c, domain.NewInvalidQueryError(err.Error()))
	}

	if err := h.index.ExecuteDeleted(c.Request().Context(), domain.SourceType(req.SourceType), req.ID); err != nil {
		logger.Logger.Error("content deleted hook: index removal failed",
			"source_type", req.SourceType, "id", req.ID, "err", err)
	}
	return c.NoContent(http.StatusAccepted)
}

// Reindex handles POST /v1/internal/reindex, the operator-triggered full
// rebuild. Safe to re-run; reads are never blocked while it runs.
func (h *Handler) Reindex(c echo.Context) error {
	result, err := h.reindex.Execute(c.Request().Context())
	if err != nil {
		logger.Logger.Error("full reindex failed", "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Code:    "INTERNAL_ERROR",
			Message: "reindex failed",
		})
	}

	return c.JSON(http.StatusAccepted, ReindexResponse{
		Status:       "completed",
		IndexedCount: result.IndexedCount,
		SkippedCount: result.SkippedCount,
		DurationMS:   result.Duration.Milliseconds(),
	})
}

// Health handles GET /v1/health.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:        "healthy",
		IndexSize:     h.store.Size(c.Request().Context()),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	})
}

// writeError maps domain errors onto the HTTP error envelope.
func writeError(c echo.Context, err error) error {
	var iq *domain.InvalidQueryError
	if errors.As(err, &iq) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_query",
			Code:    "INVALID_QUERY",
			Message: iq.Reason,
		})
	}

	var rl *domain.RateLimitError
	if errors.As(err, &rl) {
		retryAfter := int(rl.RetryAfter.Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
		return c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error:      "rate_limit_exceeded",
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    "query volume exceeded, slow down",
			RetryAfter: retryAfter,
		})
	}

	logger.Logger.Error("request failed", "err", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Code:    "INTERNAL_ERROR",
		Message: "something went wrong",
	})
}

func intParam(c echo.Context, name string, defaultVal int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return n
}
