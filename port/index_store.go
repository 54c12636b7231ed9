package port

import (
	"context"

	"search-hub/domain"
)

// IndexStore is the derived cache of source records, the only mutable shared
// search state. Reads are concurrent; writes come solely through the content
// lifecycle hooks, the streams consumer and the administrative reindex.
type IndexStore interface {
	Upsert(ctx context.Context, item domain.SearchableItem) error
	Delete(ctx context.Context, sourceType domain.SourceType, id string) error
	Get(ctx context.Context, sourceType domain.SourceType, id string) (domain.SearchableItem, bool)
	// BySource returns copies of every item owned by one adapter,
	// invisible items included; adapters apply the visibility predicate.
	BySource(ctx context.Context, sourceType domain.SourceType) []domain.SearchableItem
	// ReplaceAll atomically swaps the whole index for a freshly built
	// snapshot. Concurrent reads see either the old or the new index,
	// never a mix.
	ReplaceAll(ctx context.Context, items []domain.SearchableItem) error
	// SetPopularity updates one item's popularity score in place.
	SetPopularity(ctx context.Context, sourceType domain.SourceType, id string, score float64) bool
	Size(ctx context.Context) int
}
