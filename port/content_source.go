package port

import (
	"context"
	"time"

	"search-hub/domain"
)

// ContentSource reads the content collaborator's tables, the system of
// record the index is derived from. Batch reads use keyset pagination so a
// full reindex never holds a large offset scan open.
type ContentSource interface {
	FetchBatch(ctx context.Context, sourceType domain.SourceType, lastUpdatedAt *time.Time, lastID string, limit int) ([]domain.ContentRecord, *time.Time, string, error)
	// FetchByID retrieves a single record, for lifecycle events that
	// carry only an identifier. Returns nil when the record is gone.
	FetchByID(ctx context.Context, sourceType domain.SourceType, id string) (*domain.ContentRecord, error)
}
