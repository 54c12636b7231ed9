package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-hub/domain"
	"search-hub/driver"
)

func newFeedbackFixture(t *testing.T) (*FeedbackUsecase, *driver.InMemoryIndexStore, *fakePopularity) {
	t.Helper()
	store := driver.NewInMemoryIndexStore()
	popularity := newFakePopularity()
	return NewFeedbackUsecase(popularity, store), store, popularity
}

func TestFeedback_IncrementsPersistedAndLiveScore(t *testing.T) {
	u, store, popularity := newFeedbackFixture(t)
	require.NoError(t, store.Upsert(context.Background(), domain.SearchableItem{
		ID: "a1", SourceType: domain.SourceTypeArticle, Title: "Hello", IsVisible: true,
	}))

	require.NoError(t, u.Execute(context.Background(), domain.SourceTypeArticle, "a1"))
	require.NoError(t, u.Execute(context.Background(), domain.SourceTypeArticle, "a1"))

	assert.Equal(t, 2.0, popularity.scores["article:a1"])
	item, ok := store.Get(context.Background(), domain.SourceTypeArticle, "a1")
	require.True(t, ok)
	assert.Equal(t, 2.0, item.PopularityScore)
}

func TestFeedback_UnknownItemIgnored(t *testing.T) {
	u, _, popularity := newFeedbackFixture(t)

	err := u.Execute(context.Background(), domain.SourceTypeArticle, "ghost")
	require.NoError(t, err, "feedback for a deleted item is not a caller error")
	assert.Empty(t, popularity.scores)
}

func TestFeedback_InvalidInput(t *testing.T) {
	u, _, _ := newFeedbackFixture(t)

	err := u.Execute(context.Background(), "video", "a1")
	assert.True(t, domain.IsInvalidQuery(err))

	err = u.Execute(context.Background(), domain.SourceTypeArticle, "")
	assert.True(t, domain.IsInvalidQuery(err))
}
