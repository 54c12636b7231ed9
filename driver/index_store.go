package driver

import (
	"context"
	"sync"

	"search-hub/domain"
)

// InMemoryIndexStore holds the derived search index under a single RWMutex.
// Search and suggest take the read lock; lifecycle writes and the reindex
// swap take the write lock. Items are copied on the way in and out so no
// caller ever shares a tags slice with the store.
type InMemoryIndexStore struct {
	mu    sync.RWMutex
	items map[domain.SourceType]map[string]domain.SearchableItem
}

// NewInMemoryIndexStore creates an empty index store with a bucket per
// known source type.
func NewInMemoryIndexStore() *InMemoryIndexStore {
	return &InMemoryIndexStore{items: emptyBuckets()}
}

func emptyBuckets() map[domain.SourceType]map[string]domain.SearchableItem {
	buckets := make(map[domain.SourceType]map[string]domain.SearchableItem, len(domain.AllSourceTypes()))
	for _, st := range domain.AllSourceTypes() {
		buckets[st] = make(map[string]domain.SearchableItem)
	}
	return buckets
}

func (s *InMemoryIndexStore) Upsert(_ context.Context, item domain.SearchableItem) error {
	if item.ID == "" {
		return &DriverError{Op: "IndexStore.Upsert", Err: "item ID cannot be empty"}
	}
	if _, err := domain.ParseSourceType(string(item.SourceType)); err != nil {
		return &DriverError{Op: "IndexStore.Upsert", Err: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.items[item.SourceType]
	if !ok {
		bucket = make(map[string]domain.SearchableItem)
		s.items[item.SourceType] = bucket
	}
	bucket[item.ID] = item.Clone()
	return nil
}

func (s *InMemoryIndexStore) Delete(_ context.Context, sourceType domain.SourceType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bucket, ok := s.items[sourceType]; ok {
		delete(bucket, id)
	}
	return nil
}

func (s *InMemoryIndexStore) Get(_ context.Context, sourceType domain.SourceType, id string) (domain.SearchableItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[sourceType][id]
	if !ok {
		return domain.SearchableItem{}, false
	}
	return item.Clone(), true
}

func (s *InMemoryIndexStore) BySource(_ context.Context, sourceType domain.SourceType) []domain.SearchableItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket := s.items[sourceType]
	out := make([]domain.SearchableItem, 0, len(bucket))
	for _, item := range bucket {
		out = append(out, item.Clone())
	}
	return out
}

// ReplaceAll swaps the whole index for a freshly built snapshot in one
// write-lock acquisition, so concurrent readers see either the old or the
// new index, never a mix.
func (s *InMemoryIndexStore) ReplaceAll(_ context.Context, items []domain.SearchableItem) error {
	next := emptyBuckets()
	for _, item := range items {
		bucket, ok := next[item.SourceType]
		if !ok {
			return &DriverError{Op: "IndexStore.ReplaceAll", Err: "unknown source type: " + string(item.SourceType)}
		}
		bucket[item.ID] = item.Clone()
	}

	s.mu.Lock()
	s.items = next
	s.mu.Unlock()
	return nil
}

func (s *InMemoryIndexStore) SetPopularity(_ context.Context, sourceType domain.SourceType, id string, score float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.items[sourceType]
	if !ok {
		return false
	}
	item, ok := bucket[id]
	if !ok {
		return false
	}
	item.PopularityScore = score
	bucket[id] = item
	return true
}

func (s *InMemoryIndexStore) Size(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, bucket := range s.items {
		n += len(bucket)
	}
	return n
}
