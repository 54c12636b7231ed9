package format

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-hub/domain"
)

func TestFormat_MapsPresentation(t *testing.T) {
	f := NewFormatter(160)

	results := f.Format([]domain.ScoredResult{
		{
			Item: domain.SearchableItem{
				ID:           "a1",
				SourceType:   domain.SourceTypeArticle,
				Title:        "Redis Streams",
				Excerpt:      "Short excerpt.",
				CanonicalURL: "https://example.com/articles/redis-streams",
			},
			Score:          12.5,
			HighlightSpans: []domain.HighlightSpan{{Start: 0, End: 5}},
		},
		{
			Item: domain.SearchableItem{ID: "p1", SourceType: domain.SourceTypeProfile, Title: "Bio"},
		},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "Articles", results[0].Category)
	assert.Equal(t, "article", results[0].Icon)
	assert.Equal(t, "https://example.com/articles/redis-streams", results[0].URL)
	assert.Equal(t, 12.5, results[0].Score)
	assert.Equal(t, []domain.HighlightSpan{{Start: 0, End: 5}}, results[0].HighlightSpans)

	assert.Equal(t, "About", results[1].Category)
	assert.Equal(t, "user", results[1].Icon)
}

func TestCategoryKeys(t *testing.T) {
	assert.Equal(t, "articles", CategoryKey(domain.SourceTypeArticle))
	assert.Equal(t, "about", CategoryKey(domain.SourceTypeProfile))
	assert.ElementsMatch(t, []string{"articles", "tools", "resources", "about"}, CategoryKeys())
}

func TestFacets(t *testing.T) {
	facets := Facets([]domain.ScoredResult{
		{Item: domain.SearchableItem{SourceType: domain.SourceTypeArticle}},
		{Item: domain.SearchableItem{SourceType: domain.SourceTypeArticle}},
		{Item: domain.SearchableItem{SourceType: domain.SourceTypeTool}},
	})
	assert.Equal(t, map[string]int{"articles": 2, "tools": 1}, facets)
}

func TestWindowExcerpt_ShortExcerptUntouched(t *testing.T) {
	f := NewFormatter(160)

	spans := []domain.HighlightSpan{{Start: 2, End: 6}}
	excerpt, kept := f.windowExcerpt("A redis excerpt.", spans)
	assert.Equal(t, "A redis excerpt.", excerpt)
	assert.Equal(t, spans, kept)
}

func TestWindowExcerpt_TruncatesWithEllipsis(t *testing.T) {
	f := NewFormatter(40)

	long := strings.Repeat("word ", 30)
	excerpt, _ := f.windowExcerpt(long, nil)
	assert.LessOrEqual(t, len(excerpt), 40)
	assert.True(t, strings.HasSuffix(excerpt, "..."))
}

func TestWindowExcerpt_UnspacedMultibyteStaysValid(t *testing.T) {
	f := NewFormatter(60)

	prefix := strings.Repeat("あ", 50) // 150 bytes, no word boundaries
	excerpt := prefix + "目標" + strings.Repeat("あ", 50)
	spans := []domain.HighlightSpan{{Start: len(prefix), End: len(prefix) + len("目標")}}

	windowed, kept := f.windowExcerpt(excerpt, spans)

	assert.True(t, utf8.ValidString(windowed), "window edges must sit on rune boundaries: %q", windowed)
	require.Len(t, kept, 1)
	assert.Equal(t, "目標", windowed[kept[0].Start:kept[0].End])
}

func TestWindowExcerpt_WindowsOntoHighlight(t *testing.T) {
	f := NewFormatter(60)

	prefix := strings.Repeat("filler ", 20) // 140 bytes of text before the match
	excerpt := prefix + "needle in the haystack tail words follow here"
	spans := []domain.HighlightSpan{{Start: len(prefix), End: len(prefix) + len("needle")}}

	windowed, kept := f.windowExcerpt(excerpt, spans)

	assert.True(t, strings.HasPrefix(windowed, "..."), "an opened window is marked")
	assert.Contains(t, windowed, "needle")
	require.Len(t, kept, 1)
	// The span is re-based onto the returned string.
	assert.Equal(t, "needle", windowed[kept[0].Start:kept[0].End])
}
