package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"search-hub/adapter"
	"search-hub/domain"
	"search-hub/logger"
	"search-hub/metrics"
	"search-hub/port"
)

// ReindexUsecase rebuilds the whole index from every content source. The
// fresh snapshot is assembled off to the side with a worker pool and then
// atomically swapped in, so concurrent search reads never block and never
// see a half-built index. Re-running is idempotent: the result is derived
// entirely from the current source records.
type ReindexUsecase struct {
	registry   *adapter.Registry
	store      port.IndexStore
	popularity port.PopularityRepository
	source     port.ContentSource
	batchSize  int
	workers    int
}

// ReindexResult summarizes one completed rebuild.
type ReindexResult struct {
	IndexedCount int
	SkippedCount int
	Duration     time.Duration
}

func NewReindexUsecase(registry *adapter.Registry, store port.IndexStore, popularity port.PopularityRepository, source port.ContentSource, batchSize, workers int) *ReindexUsecase {
	if batchSize <= 0 {
		batchSize = 200
	}
	if workers <= 0 {
		workers = 4
	}
	return &ReindexUsecase{
		registry:   registry,
		store:      store,
		popularity: popularity,
		source:     source,
		batchSize:  batchSize,
		workers:    workers,
	}
}

// Execute streams every source via keyset pagination, maps records through
// the adapters on a bounded worker pool, hydrates persisted popularity, and
// swaps the snapshot in.
func (u *ReindexUsecase) Execute(ctx context.Context) (*ReindexResult, error) {
	start := time.Now()

	popularity, err := u.popularity.LoadAll(ctx)
	if err != nil {
		logger.Logger.Warn("popularity hydrate failed, reindexing without it", "err", err)
		popularity = map[string]float64{}
	}

	pool, err := ants.NewPool(u.workers)
	if err != nil {
		return nil, &domain.IndexSyncError{Op: "Reindex", Err: err.Error()}
	}
	defer pool.Release()

	var mu sync.Mutex
	var wg sync.WaitGroup
	var snapshot []domain.SearchableItem
	skipped := 0

	for _, a := range u.registry.All() {
		records, err := u.streamSource(ctx, a.SourceType())
		if err != nil {
			return nil, err
		}

		for _, record := range records {
			wg.Add(1)
			record := record
			submitErr := pool.Submit(func() {
				defer wg.Done()
				item, err := a.MapRecord(record)
				if err != nil {
					logger.Logger.Warn("record skipped during reindex",
						"source_type", record.SourceType, "id", record.ID, "err", err)
					mu.Lock()
					skipped++
					mu.Unlock()
					return
				}
				item.PopularityScore = popularity[item.Key()]

				mu.Lock()
				snapshot = append(snapshot, item)
				mu.Unlock()
			})
			if submitErr != nil {
				wg.Done()
				return nil, &domain.IndexSyncError{Op: "Reindex", Err: submitErr.Error()}
			}
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := u.store.ReplaceAll(ctx, snapshot); err != nil {
		return nil, &domain.IndexSyncError{Op: "Reindex", Err: err.Error()}
	}

	metrics.IndexSize.Set(float64(u.store.Size(ctx)))

	result := &ReindexResult{
		IndexedCount: len(snapshot),
		SkippedCount: skipped,
		Duration:     time.Since(start),
	}
	logger.Logger.Info("reindex complete",
		"indexed", result.IndexedCount,
		"skipped", result.SkippedCount,
		"duration", result.Duration,
	)
	return result, nil
}

// streamSource drains one source table through keyset pagination.
func (u *ReindexUsecase) streamSource(ctx context.Context, sourceType domain.SourceType) ([]domain.ContentRecord, error) {
	var all []domain.ContentRecord
	var lastUpdatedAt *time.Time
	lastID := ""

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch, cursor, cursorID, err := u.source.FetchBatch(ctx, sourceType, lastUpdatedAt, lastID, u.batchSize)
		if err != nil {
			return nil, &domain.IndexSyncError{Op: "Reindex.FetchBatch", Err: err.Error()}
		}
		if len(batch) == 0 {
			return all, nil
		}

		all = append(all, batch...)
		lastUpdatedAt = cursor
		lastID = cursorID

		if len(batch) < u.batchSize {
			return all, nil
		}
	}
}
