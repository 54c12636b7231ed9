package rest

import (
	"time"

	"search-hub/domain"
	"search-hub/format"
)

// SearchResponse is the ranked, paginated search result payload.
type SearchResponse struct {
	Results    []format.Result `json:"results"`
	Facets     map[string]int  `json:"facets"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount int             `json:"total_count"`
}

// SuggestResponse carries autocomplete suggestions.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// PopularResponse carries the ranked recent popular query terms.
type PopularResponse struct {
	Queries []domain.PopularQuery `json:"queries"`
}

// FeedbackRequest identifies the item a popularity signal applies to.
type FeedbackRequest struct {
	SourceType string `json:"source_type"`
	ID         string `json:"id"`
}

// ContentSavedRequest is the create/update lifecycle hook payload. Fields
// still carry whatever markup the content store persisted; sanitization
// happens on the way into the index.
type ContentSavedRequest struct {
	SourceType   string            `json:"source_type"`
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Summary      string            `json:"summary"`
	Body         string            `json:"body"`
	Tags         []string          `json:"tags"`
	Category     string            `json:"category"`
	Published    bool              `json:"published"`
	Featured     bool              `json:"featured"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	CanonicalURL string            `json:"canonical_url"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// ContentDeletedRequest is the delete lifecycle hook payload.
type ContentDeletedRequest struct {
	SourceType string `json:"source_type"`
	ID         string `json:"id"`
}

// ReindexResponse summarizes one full rebuild.
type ReindexResponse struct {
	Status       string `json:"status"`
	IndexedCount int    `json:"indexed_count"`
	SkippedCount int    `json:"skipped_count"`
	DurationMS   int64  `json:"duration_ms"`
}

// HealthResponse reports service liveness and index stats.
type HealthResponse struct {
	Status        string `json:"status"`
	IndexSize     int    `json:"index_size"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ErrorResponse is the JSON error envelope for every read-path failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after,omitempty"`
}
