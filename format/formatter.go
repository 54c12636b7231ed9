// Package format maps scored items onto the stable, display-agnostic
// response schema. Source types resolve to category labels and icon keys
// through a static lookup table; nothing here branches on type.
package format

import (
	"strings"
	"unicode/utf8"

	"search-hub/domain"
)

// DefaultDisplayLength bounds formatted excerpts.
const DefaultDisplayLength = 160

const (
	ellipsis      = "..."
	contextBefore = 40
)

// Presentation is the display identity of one source type.
type Presentation struct {
	Category string
	Icon     string
}

var presentations = map[domain.SourceType]Presentation{
	domain.SourceTypeArticle:  {Category: "Articles", Icon: "article"},
	domain.SourceTypeTool:     {Category: "Tools", Icon: "wrench"},
	domain.SourceTypeResource: {Category: "Resources", Icon: "bookmark"},
	domain.SourceTypeProfile:  {Category: "About", Icon: "user"},
}

// Lookup resolves the presentation for a source type.
func Lookup(st domain.SourceType) Presentation {
	return presentations[st]
}

// CategoryKey is the lowercase category identifier used for filtering and
// facet counting.
func CategoryKey(st domain.SourceType) string {
	return strings.ToLower(presentations[st].Category)
}

// CategoryKeys returns every filterable category key.
func CategoryKeys() []string {
	keys := make([]string, 0, len(presentations))
	for _, st := range domain.AllSourceTypes() {
		keys = append(keys, CategoryKey(st))
	}
	return keys
}

// Result is one response-ready search hit.
type Result struct {
	ID             string                 `json:"id"`
	SourceType     string                 `json:"source_type"`
	Title          string                 `json:"title"`
	Excerpt        string                 `json:"excerpt"`
	HighlightSpans []domain.HighlightSpan `json:"highlight_spans"`
	Category       string                 `json:"category"`
	Icon           string                 `json:"icon"`
	URL            string                 `json:"url"`
	Score          float64                `json:"score"`
}

// Formatter converts scored results into response objects.
type Formatter struct {
	displayLength int
}

// NewFormatter builds a Formatter with the given excerpt display length.
func NewFormatter(displayLength int) *Formatter {
	if displayLength <= len(ellipsis)*2+1 {
		displayLength = DefaultDisplayLength
	}
	return &Formatter{displayLength: displayLength}
}

// Format maps every scored result. The canonical URL passes through
// unchanged.
func (f *Formatter) Format(results []domain.ScoredResult) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		out = append(out, f.formatOne(r))
	}
	return out
}

func (f *Formatter) formatOne(r domain.ScoredResult) Result {
	p := Lookup(r.Item.SourceType)
	excerpt, spans := f.windowExcerpt(r.Item.Excerpt, r.HighlightSpans)

	return Result{
		ID:             r.Item.ID,
		SourceType:     string(r.Item.SourceType),
		Title:          r.Item.Title,
		Excerpt:        excerpt,
		HighlightSpans: spans,
		Category:       p.Category,
		Icon:           p.Icon,
		URL:            r.Item.CanonicalURL,
		Score:          r.Score,
	}
}

// Facets counts the full scored result set per category key, before
// pagination, so filter UIs see totals rather than page slices.
func Facets(results []domain.ScoredResult) map[string]int {
	facets := make(map[string]int)
	for _, r := range results {
		facets[CategoryKey(r.Item.SourceType)]++
	}
	return facets
}

// windowExcerpt truncates an excerpt to the display length while keeping at
// least the first highlight span visible where possible. Span offsets are
// re-based onto the returned string; spans that fall outside the window are
// dropped.
func (f *Formatter) windowExcerpt(excerpt string, spans []domain.HighlightSpan) (string, []domain.HighlightSpan) {
	if len(excerpt) <= f.displayLength {
		return excerpt, spans
	}

	start := 0
	budget := f.displayLength - len(ellipsis) // tail ellipsis is always needed

	if len(spans) > 0 && spans[0].End > budget {
		start = spans[0].Start - contextBefore
		if start < 0 {
			start = 0
		}
		// Move onto a word boundary so the window does not open mid-word.
		if start > 0 {
			if idx := strings.IndexByte(excerpt[start:], ' '); idx != -1 && start+idx+1 <= spans[0].Start {
				start += idx + 1
			}
		}
		// Unspaced text gets no word boundary; still never open mid-rune.
		for start < len(excerpt) && !utf8.RuneStart(excerpt[start]) {
			start++
		}
		if start > 0 {
			budget = f.displayLength - 2*len(ellipsis)
		}
	}

	end := start + budget
	if end >= len(excerpt) {
		end = len(excerpt)
	} else if idx := strings.LastIndexByte(excerpt[start:end], ' '); idx > budget-30 {
		end = start + idx
	} else {
		for end > start && !utf8.RuneStart(excerpt[end]) {
			end--
		}
	}

	var b strings.Builder
	prefixLen := 0
	if start > 0 {
		b.WriteString(ellipsis)
		prefixLen = len(ellipsis)
	}
	b.WriteString(excerpt[start:end])
	if end < len(excerpt) {
		b.WriteString(ellipsis)
	}

	var kept []domain.HighlightSpan
	for _, s := range spans {
		if s.Start < start || s.End > end {
			continue
		}
		kept = append(kept, domain.HighlightSpan{
			Start: s.Start - start + prefixLen,
			End:   s.End - start + prefixLen,
		})
	}
	return b.String(), kept
}
