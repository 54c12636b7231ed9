package score

import (
	"sort"
	"strings"

	"search-hub/domain"
)

// maxSpansPerResult bounds the highlight payload per item.
const maxSpansPerResult = 8

// HighlightSpans locates term matches inside the excerpt as byte offsets,
// merged and sorted. Offsets are computed against the lowercased excerpt;
// when lowercasing changes the byte length (rare outside Turkish dotted
// capitals) spans are omitted rather than risk misaligned offsets.
func HighlightSpans(excerpt string, terms []string) []domain.HighlightSpan {
	if excerpt == "" || len(terms) == 0 {
		return nil
	}

	lowered := strings.ToLower(excerpt)
	if len(lowered) != len(excerpt) {
		return nil
	}

	var spans []domain.HighlightSpan
	for _, term := range terms {
		if term == "" {
			continue
		}
		offset := 0
		for len(spans) < maxSpansPerResult {
			idx := strings.Index(lowered[offset:], term)
			if idx == -1 {
				break
			}
			start := offset + idx
			spans = append(spans, domain.HighlightSpan{Start: start, End: start + len(term)})
			offset = start + len(term)
		}
	}

	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
	return mergeSpans(spans)
}

// mergeSpans collapses overlapping or touching spans into one.
func mergeSpans(spans []domain.HighlightSpan) []domain.HighlightSpan {
	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	return out
}
