package port

import (
	"context"

	"search-hub/domain"
)

// AnalyticsRecorder persists query analytics and serves the popular-queries
// view. Record must never block or fail the search response path.
type AnalyticsRecorder interface {
	Record(entry domain.QueryLogEntry)
	PopularQueries(ctx context.Context, limit int) ([]domain.PopularQuery, error)
}

// PopularityRepository is the persisted popularity signal keyed by
// source-type-scoped item identity. Feedback increments it; indexing loads
// it into items; the scorer only ever reads the loaded value.
type PopularityRepository interface {
	Increment(ctx context.Context, sourceType domain.SourceType, id string, delta float64) (float64, error)
	Load(ctx context.Context, sourceType domain.SourceType, id string) (float64, error)
	LoadAll(ctx context.Context) (map[string]float64, error)
}
