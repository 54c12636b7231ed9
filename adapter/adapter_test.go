package adapter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-hub/domain"
	"search-hub/driver"
	"search-hub/sanitize"
)

func articleRecord(id, title string) domain.ContentRecord {
	now := time.Now()
	return domain.ContentRecord{
		ID:         id,
		SourceType: domain.SourceTypeArticle,
		Title:      title,
		Summary:    "A summary.",
		Body:       "Body text about indexing.",
		Tags:       []string{"go", "search"},
		Category:   "engineering",
		Published:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestArticleAdapter_MapRecord(t *testing.T) {
	a := NewArticleAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	record := articleRecord("a1", "<h1>Building a Search Index</h1>")
	record.Body = "<p>Plain body</p><script>alert(1)</script>"
	record.Featured = true

	item, err := a.MapRecord(record)
	require.NoError(t, err)

	assert.Equal(t, "a1", item.ID)
	assert.Equal(t, domain.SourceTypeArticle, item.SourceType)
	assert.Equal(t, "Building a Search Index", item.Title)
	assert.Equal(t, "Plain body", item.Body)
	assert.NotContains(t, item.Body, "script")
	assert.Equal(t, []string{"go", "search"}, item.Tags)
	assert.True(t, item.IsVisible)
	assert.True(t, item.IsFeatured)
}

func TestArticleAdapter_MapRecord_Unpublished(t *testing.T) {
	a := NewArticleAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	record := articleRecord("a1", "Draft")
	record.Published = false

	item, err := a.MapRecord(record)
	require.NoError(t, err)
	assert.False(t, item.IsVisible)
}

func TestArticleAdapter_MapRecord_InvalidRecord(t *testing.T) {
	a := NewArticleAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	_, err := a.MapRecord(domain.ContentRecord{SourceType: domain.SourceTypeArticle})
	assert.Error(t, err)
}

func TestMapRecord_FieldExcludedWhenSanitizationFails(t *testing.T) {
	// A tiny length bound makes the hard input cap easy to exceed.
	a := NewArticleAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10))

	record := articleRecord("a1", "Title")
	record.Body = strings.Repeat("x", 200)

	item, err := a.MapRecord(record)
	require.NoError(t, err)
	assert.Equal(t, "Title", item.Title)
	assert.Empty(t, item.Body, "unsanitizable field is excluded, not indexed raw")
	assert.True(t, item.IsVisible, "remaining safe fields keep the item searchable")
}

func TestMapRecord_AllFieldsSanitizedAwayHidesItem(t *testing.T) {
	a := NewArticleAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	record := articleRecord("a1", "<script>alert(1)</script>")
	record.Summary = ""
	record.Body = ""
	record.Tags = nil

	item, err := a.MapRecord(record)
	require.NoError(t, err)
	assert.False(t, item.IsVisible)
}

func TestToolAdapter_MapRecord_Platform(t *testing.T) {
	a := NewToolAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	record := articleRecord("t1", "ripgrep")
	record.SourceType = domain.SourceTypeTool
	record.Extra = map[string]string{"platform": "cli"}

	item, err := a.MapRecord(record)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceTypeTool, item.SourceType)
	assert.Equal(t, "cli", item.Meta)
}

func TestResourceAdapter_MapRecord_Kind(t *testing.T) {
	a := NewResourceAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	record := articleRecord("r1", "Designing Data-Intensive Applications")
	record.SourceType = domain.SourceTypeResource
	record.Extra = map[string]string{"kind": "book"}

	item, err := a.MapRecord(record)
	require.NoError(t, err)
	assert.Equal(t, "book", item.Meta)
}

func TestProfileAdapter_MapRecord(t *testing.T) {
	a := NewProfileAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	record := domain.ContentRecord{
		ID:         "p1",
		SourceType: domain.SourceTypeProfile,
		Title:      "Bio",
		Body:       "I build search systems.",
		Published:  true,
		Extra:      map[string]string{"section": "about"},
	}

	item, err := a.MapRecord(record)
	require.NoError(t, err)
	assert.Equal(t, "Bio", item.Title)
	assert.Equal(t, "I build search systems.", item.Body)
	assert.Equal(t, item.Body, item.Excerpt, "profile value doubles as excerpt")
	assert.Equal(t, "about", item.Meta)
}

func seedArticles(t *testing.T, a *ArticleAdapter, items ...domain.SearchableItem) {
	t.Helper()
	for _, item := range items {
		require.NoError(t, a.store.Upsert(context.Background(), item))
	}
}

func visibleArticle(id, title string) domain.SearchableItem {
	return domain.SearchableItem{
		ID:         id,
		SourceType: domain.SourceTypeArticle,
		Title:      title,
		Body:       "body text",
		Category:   "engineering",
		IsVisible:  true,
	}
}

func TestFetchCandidates_TermAndVisibility(t *testing.T) {
	a := NewArticleAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	hidden := visibleArticle("a2", "Hidden Redis Notes")
	hidden.IsVisible = false
	seedArticles(t, a,
		visibleArticle("a1", "Redis Patterns"),
		hidden,
		visibleArticle("a3", "Unrelated"),
	)

	got, err := a.FetchCandidates(context.Background(), []string{"redis"}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)
}

func TestFetchCandidates_BrowseMode(t *testing.T) {
	a := NewArticleAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))
	seedArticles(t, a, visibleArticle("a1", "One"), visibleArticle("a2", "Two"))

	got, err := a.FetchCandidates(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2, "no terms means every visible item qualifies")
}

func TestFetchCandidates_CategoryFilter(t *testing.T) {
	a := NewArticleAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	other := visibleArticle("a2", "Two")
	other.Category = "personal"
	seedArticles(t, a, visibleArticle("a1", "One"), other)

	byCategory, err := a.FetchCandidates(context.Background(), nil, []string{"Engineering"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "a1", byCategory[0].ID)

	// The section key selects the whole adapter regardless of item category.
	bySection, err := a.FetchCandidates(context.Background(), nil, []string{"articles"})
	require.NoError(t, err)
	assert.Len(t, bySection, 2)
}

func TestSuggestions_PopularityThenAlpha(t *testing.T) {
	a := NewArticleAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	popular := visibleArticle("a1", "Go Concurrency")
	popular.PopularityScore = 5
	seedArticles(t, a,
		popular,
		visibleArticle("a2", "Go Generics"),
		visibleArticle("a3", "Go Basics"),
	)

	got, err := a.Suggestions(context.Background(), "go", 8)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Go Concurrency", got[0], "popularity outranks alphabetical order")
	assert.Equal(t, []string{"Go Basics", "Go Generics"}, got[1:])
}

func TestSuggestions_DuplicateTitleKeepsMostPopularCopy(t *testing.T) {
	a := NewArticleAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	first := visibleArticle("a1", "Go Patterns")
	first.PopularityScore = 2
	second := visibleArticle("a2", "Go Patterns")
	second.PopularityScore = 3
	competitor := visibleArticle("a3", "Go Basics")
	competitor.PopularityScore = 2.5
	seedArticles(t, a, first, second, competitor)

	got, err := a.Suggestions(context.Background(), "go", 8)
	require.NoError(t, err)
	// The duplicate title ranks by its most popular copy (weight 4),
	// which must beat the 3.5-weight competitor.
	assert.Equal(t, []string{"Go Patterns", "Go Basics"}, got)
}

func TestSuggestions_TagsAndLimit(t *testing.T) {
	a := NewArticleAdapter(driver.NewInMemoryIndexStore(), sanitize.NewPipeline(10000))

	tagged := visibleArticle("a1", "Unrelated Title")
	tagged.Tags = []string{"golang", "gopher"}
	seedArticles(t, a, tagged, visibleArticle("a2", "Go Routines"))

	got, err := a.Suggestions(context.Background(), "go", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	none, err := a.Suggestions(context.Background(), "", 8)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRegistry(t *testing.T) {
	store := driver.NewInMemoryIndexStore()
	pipeline := sanitize.NewPipeline(10000)
	r := NewRegistry(
		NewArticleAdapter(store, pipeline),
		NewToolAdapter(store, pipeline),
		NewToolAdapter(store, pipeline), // duplicate is ignored
	)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, domain.SourceTypeArticle, all[0].SourceType())
	assert.Equal(t, domain.SourceTypeTool, all[1].SourceType())

	_, ok := r.Get(domain.SourceTypeProfile)
	assert.False(t, ok)

	weights := r.FieldWeights()
	require.Contains(t, weights, domain.SourceTypeArticle)
	assert.Equal(t, domain.FieldTitle, weights[domain.SourceTypeArticle][0].Field)
}

func TestPopularTags(t *testing.T) {
	items := []domain.SearchableItem{
		{ID: "1", IsVisible: true, Tags: []string{"go", "redis"}},
		{ID: "2", IsVisible: true, Tags: []string{"go", "postgres"}},
		{ID: "3", IsVisible: false, Tags: []string{"hidden"}},
	}

	tags := PopularTags(items, 2)
	assert.Equal(t, []string{"go", "postgres"}, tags, "count desc, then alphabetical")

	counts := TagCounts(items, "po")
	assert.Equal(t, map[string]float64{"postgres": 1}, counts)
}
