package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-hub/adapter"
	"search-hub/domain"
	"search-hub/driver"
	"search-hub/sanitize"
)

type fakePopularity struct {
	mu     sync.Mutex
	scores map[string]float64
}

func newFakePopularity() *fakePopularity {
	return &fakePopularity{scores: make(map[string]float64)}
}

func popKey(st domain.SourceType, id string) string {
	return string(st) + ":" + id
}

func (p *fakePopularity) Increment(_ context.Context, st domain.SourceType, id string, delta float64) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scores[popKey(st, id)] += delta
	return p.scores[popKey(st, id)], nil
}

func (p *fakePopularity) Load(_ context.Context, st domain.SourceType, id string) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scores[popKey(st, id)], nil
}

func (p *fakePopularity) LoadAll(_ context.Context) (map[string]float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]float64, len(p.scores))
	for k, v := range p.scores {
		out[k] = v
	}
	return out, nil
}

type fakeSource struct {
	mu      sync.Mutex
	records map[string]domain.ContentRecord
	batches map[domain.SourceType][][]domain.ContentRecord
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		records: make(map[string]domain.ContentRecord),
		batches: make(map[domain.SourceType][][]domain.ContentRecord),
	}
}

func (s *fakeSource) FetchBatch(_ context.Context, st domain.SourceType, _ *time.Time, _ string, _ int) ([]domain.ContentRecord, *time.Time, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	queued := s.batches[st]
	if len(queued) == 0 {
		return nil, nil, "", nil
	}
	batch := queued[0]
	s.batches[st] = queued[1:]
	if len(batch) == 0 {
		return nil, nil, "", nil
	}
	last := batch[len(batch)-1]
	cursor := last.UpdatedAt
	return batch, &cursor, last.ID, nil
}

func (s *fakeSource) FetchByID(_ context.Context, st domain.SourceType, id string) (*domain.ContentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[popKey(st, id)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

type indexFixture struct {
	usecase    *IndexContentUsecase
	store      *driver.InMemoryIndexStore
	popularity *fakePopularity
	source     *fakeSource
}

func newIndexFixture(t *testing.T) *indexFixture {
	t.Helper()

	store := driver.NewInMemoryIndexStore()
	pipeline := sanitize.NewPipeline(10000)
	registry := adapter.NewRegistry(
		adapter.NewArticleAdapter(store, pipeline),
		adapter.NewToolAdapter(store, pipeline),
		adapter.NewResourceAdapter(store, pipeline),
		adapter.NewProfileAdapter(store, pipeline),
	)

	popularity := newFakePopularity()
	source := newFakeSource()
	return &indexFixture{
		usecase:    NewIndexContentUsecase(registry, store, popularity, source),
		store:      store,
		popularity: popularity,
		source:     source,
	}
}

func savedArticle(id, title string) domain.ContentRecord {
	now := time.Now()
	return domain.ContentRecord{
		ID:         id,
		SourceType: domain.SourceTypeArticle,
		Title:      title,
		Body:       "body text",
		Published:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestIndexContent_SavedIndexesRecord(t *testing.T) {
	f := newIndexFixture(t)
	f.popularity.scores["article:a1"] = 4

	err := f.usecase.ExecuteSaved(context.Background(), savedArticle("a1", "Hello"))
	require.NoError(t, err)

	item, ok := f.store.Get(context.Background(), domain.SourceTypeArticle, "a1")
	require.True(t, ok)
	assert.Equal(t, "Hello", item.Title)
	assert.Equal(t, 4.0, item.PopularityScore, "persisted popularity is hydrated on index")
}

func TestIndexContent_UnpublishedSaveRemoves(t *testing.T) {
	f := newIndexFixture(t)
	require.NoError(t, f.usecase.ExecuteSaved(context.Background(), savedArticle("a1", "Hello")))

	record := savedArticle("a1", "Hello")
	record.Published = false
	require.NoError(t, f.usecase.ExecuteSaved(context.Background(), record))

	_, ok := f.store.Get(context.Background(), domain.SourceTypeArticle, "a1")
	assert.False(t, ok, "unpublishing removes the item from the index")
}

func TestIndexContent_InvalidRecordRejected(t *testing.T) {
	f := newIndexFixture(t)

	err := f.usecase.ExecuteSaved(context.Background(), domain.ContentRecord{SourceType: domain.SourceTypeArticle})
	assert.Error(t, err)

	err = f.usecase.ExecuteSaved(context.Background(), domain.ContentRecord{ID: "x", SourceType: "video"})
	assert.Error(t, err)
}

func TestIndexContent_SavedByIDRefetches(t *testing.T) {
	f := newIndexFixture(t)
	f.source.records["article:a1"] = savedArticle("a1", "Fetched Title")

	err := f.usecase.ExecuteSavedByID(context.Background(), domain.SourceTypeArticle, "a1")
	require.NoError(t, err)

	item, ok := f.store.Get(context.Background(), domain.SourceTypeArticle, "a1")
	require.True(t, ok)
	assert.Equal(t, "Fetched Title", item.Title)
}

func TestIndexContent_SavedByIDGoneRecordRemoves(t *testing.T) {
	f := newIndexFixture(t)
	require.NoError(t, f.usecase.ExecuteSaved(context.Background(), savedArticle("a1", "Hello")))

	// The record vanished from the system of record between the event and
	// the re-read.
	err := f.usecase.ExecuteSavedByID(context.Background(), domain.SourceTypeArticle, "a1")
	require.NoError(t, err)

	_, ok := f.store.Get(context.Background(), domain.SourceTypeArticle, "a1")
	assert.False(t, ok)
}

func TestIndexContent_DeletedIsIdempotent(t *testing.T) {
	f := newIndexFixture(t)
	require.NoError(t, f.usecase.ExecuteSaved(context.Background(), savedArticle("a1", "Hello")))

	require.NoError(t, f.usecase.ExecuteDeleted(context.Background(), domain.SourceTypeArticle, "a1"))
	require.NoError(t, f.usecase.ExecuteDeleted(context.Background(), domain.SourceTypeArticle, "a1"))

	assert.Zero(t, f.store.Size(context.Background()))
}
