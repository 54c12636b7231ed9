package usecase

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"search-hub/adapter"
	"search-hub/domain"
	"search-hub/logger"
	"search-hub/metrics"
	"search-hub/port"
)

const indexMaxAttempts = 3

// IndexContentUsecase is the index's only write entry point besides the
// reindex. Content owners call it through the lifecycle hooks; they never
// write SearchableItem storage directly. A failed index write is retried
// with backoff and logged, and must never abort the content save or delete
// that triggered it — the caller treats the returned IndexSyncError as
// already handled.
type IndexContentUsecase struct {
	registry   *adapter.Registry
	store      port.IndexStore
	popularity port.PopularityRepository
	source     port.ContentSource
}

func NewIndexContentUsecase(registry *adapter.Registry, store port.IndexStore, popularity port.PopularityRepository, source port.ContentSource) *IndexContentUsecase {
	return &IndexContentUsecase{
		registry:   registry,
		store:      store,
		popularity: popularity,
		source:     source,
	}
}

// ExecuteSaved sanitizes and indexes one saved record. A record that is no
// longer visible is removed from the index instead.
func (u *IndexContentUsecase) ExecuteSaved(ctx context.Context, record domain.ContentRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	a, ok := u.registry.Get(record.SourceType)
	if !ok {
		return &domain.IndexSyncError{Op: "ExecuteSaved", Err: "no adapter for source type " + string(record.SourceType)}
	}

	item, err := a.MapRecord(record)
	if err != nil {
		return &domain.IndexSyncError{Op: "ExecuteSaved", Err: err.Error()}
	}

	if !item.IsVisible {
		// Unpublished content disappears from the index immediately.
		return u.ExecuteDeleted(ctx, record.SourceType, record.ID)
	}

	if pop, err := u.popularity.Load(ctx, item.SourceType, item.ID); err == nil {
		item.PopularityScore = pop
	} else {
		logger.Logger.Warn("popularity load failed, indexing without it", "err", err)
	}

	if err := u.upsertWithRetry(ctx, item); err != nil {
		metrics.IndexOpsTotal.WithLabelValues("upsert", "error").Inc()
		logger.Logger.Error("index upsert failed after retries",
			"source_type", item.SourceType, "id", item.ID, "err", err)
		return &domain.IndexSyncError{Op: "ExecuteSaved", Err: err.Error()}
	}

	metrics.IndexOpsTotal.WithLabelValues("upsert", "ok").Inc()
	metrics.IndexSize.Set(float64(u.store.Size(ctx)))
	return nil
}

// ExecuteSavedByID handles lifecycle events that carry only an identifier:
// the record is re-read from the system of record first. A record that no
// longer exists is removed from the index.
func (u *IndexContentUsecase) ExecuteSavedByID(ctx context.Context, sourceType domain.SourceType, id string) error {
	record, err := u.source.FetchByID(ctx, sourceType, id)
	if err != nil {
		return &domain.IndexSyncError{Op: "ExecuteSavedByID", Err: err.Error()}
	}
	if record == nil {
		return u.ExecuteDeleted(ctx, sourceType, id)
	}
	return u.ExecuteSaved(ctx, *record)
}

// ExecuteDeleted removes one item. Deletes are reflected at least as fast
// as creates; there is no buffering on this path.
func (u *IndexContentUsecase) ExecuteDeleted(ctx context.Context, sourceType domain.SourceType, id string) error {
	if err := u.store.Delete(ctx, sourceType, id); err != nil {
		metrics.IndexOpsTotal.WithLabelValues("delete", "error").Inc()
		return &domain.IndexSyncError{Op: "ExecuteDeleted", Err: err.Error()}
	}
	metrics.IndexOpsTotal.WithLabelValues("delete", "ok").Inc()
	metrics.IndexSize.Set(float64(u.store.Size(ctx)))
	return nil
}

func (u *IndexContentUsecase) upsertWithRetry(ctx context.Context, item domain.SearchableItem) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 2 * time.Second

	var err error
	for attempt := 0; attempt < indexMaxAttempts; attempt++ {
		if err = u.store.Upsert(ctx, item); err == nil {
			return nil
		}
		select {
		case <-time.After(bo.NextBackOff()):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
