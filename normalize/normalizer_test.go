package normalize

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-hub/domain"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer(DefaultConfig())
	require.NoError(t, err)
	return n
}

func TestNormalize_Terms(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name      string
		raw       string
		wantTerms []string
	}{
		{
			name:      "lowercases and splits on whitespace",
			raw:       "Python Tips",
			wantTerms: []string{"python", "tips"},
		},
		{
			name:      "splits on punctuation",
			raw:       "go,redis;echo",
			wantTerms: []string{"go", "redis", "echo"},
		},
		{
			name:      "dedupes preserving first-seen order",
			raw:       "go tips go redis tips",
			wantTerms: []string{"go", "tips", "redis"},
		},
		{
			name:      "strips markup before tokenizing",
			raw:       "<b>search</b> engine",
			wantTerms: []string{"search", "engine"},
		},
		{
			name:      "script block dropped entirely",
			raw:       `hello <script>alert("x")</script> world`,
			wantTerms: []string{"hello", "world"},
		},
		{
			name:      "url encoded payload decoded then stripped",
			raw:       "tips%3Cscript%3Ealert(1)%3C/script%3E",
			wantTerms: []string{"tips"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := n.Normalize(tt.raw, nil, 1, 20)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTerms, q.Terms)
		})
	}
}

func TestNormalize_JapaneseSegmentation(t *testing.T) {
	n := newTestNormalizer(t)

	q, err := n.Normalize("東京タワー", nil, 1, 20)
	require.NoError(t, err)
	assert.Greater(t, len(q.Terms), 1, "kagome should segment the compound")
}

func TestNormalize_EmptyQuery(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name       string
		raw        string
		categories []string
		wantErr    bool
	}{
		{name: "empty query no filter", raw: "", wantErr: true},
		{name: "whitespace only no filter", raw: "   \t  ", wantErr: true},
		{name: "punctuation only no filter", raw: "!!! ???", wantErr: true},
		{name: "empty query with category filter", raw: "", categories: []string{"tools"}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.raw, tt.categories, 1, 20)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsInvalidQuery(err), "expected InvalidQueryError, got %v", err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNormalize_RejectsHostileInput(t *testing.T) {
	n := newTestNormalizer(t)

	_, err := n.Normalize("search\x00term", nil, 1, 20)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidQuery(err))

	_, err = n.Normalize(strings.Repeat("a", 1001), nil, 1, 20)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidQuery(err))
}

func TestNormalize_TermCap(t *testing.T) {
	n := newTestNormalizer(t)

	words := make([]string, 30)
	for i := range words {
		words[i] = fmt.Sprintf("term%02d", i)
	}

	q, err := n.Normalize(strings.Join(words, " "), nil, 1, 20)
	require.NoError(t, err)
	assert.Len(t, q.Terms, 20)
	assert.Equal(t, "term00", q.Terms[0])
	assert.Equal(t, "term19", q.Terms[19])
}

func TestNormalize_Paging(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults applied", page: 0, pageSize: 0, wantPage: 1, wantPageSize: 20},
		{name: "negative page clamped", page: -3, pageSize: 10, wantPage: 1, wantPageSize: 10},
		{name: "oversized page size clamped", page: 2, pageSize: 500, wantPage: 2, wantPageSize: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := n.Normalize("python", nil, tt.page, tt.pageSize)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantPageSize, q.PageSize)
		})
	}
}

func TestNormalize_CategoryFilter(t *testing.T) {
	n := newTestNormalizer(t)

	q, err := n.Normalize("python", []string{"Tools", "tools", "Articles"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"tools", "articles"}, q.CategoryFilter)

	_, err = n.Normalize("python", []string{"tools<script>"}, 1, 20)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidQuery(err))
}

func TestNormalizePrefix(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "lowercased and trimmed", raw: "  PyTho  ", want: "pytho"},
		{name: "inner whitespace collapsed", raw: "go   red", want: "go red"},
		{name: "markup stripped", raw: "<img onerror=x>py", want: "py"},
		{name: "empty stays empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.NormalizePrefix(tt.raw))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		`hello <script>alert("x")</script> world`,
		"java%3Ascript tips",
		"plain query",
		"<ScRiPt>nested<script>x</script></sCrIpT>deep",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		assert.Equal(t, once, twice, "Clean must be idempotent for %q", in)
	}
}
