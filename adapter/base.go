package adapter

import (
	"context"
	"sort"
	"strings"

	"search-hub/domain"
	"search-hub/format"
	"search-hub/logger"
	"search-hub/metrics"
	"search-hub/port"
	"search-hub/sanitize"
)

// base carries the behavior shared by every adapter: candidate matching,
// suggestion lookup and fail-closed field sanitization. Concrete adapters
// embed it and add only their record mapping.
type base struct {
	sourceType domain.SourceType
	weights    []domain.FieldWeight
	store      port.IndexStore
	pipeline   *sanitize.Pipeline
}

func (b *base) SourceType() domain.SourceType {
	return b.sourceType
}

func (b *base) FieldWeights() []domain.FieldWeight {
	return b.weights
}

// FetchCandidates filters the adapter's items down to visible ones passing
// the category filter with at least one term in a declared field. With no
// terms (browse mode) every visible item in the category qualifies.
func (b *base) FetchCandidates(ctx context.Context, terms []string, categories []string) ([]domain.SearchableItem, error) {
	items := b.store.BySource(ctx, b.sourceType)

	candidates := make([]domain.SearchableItem, 0, len(items))
	for _, item := range items {
		if !item.IsVisible {
			continue
		}
		if !b.categoryMatches(item, categories) {
			continue
		}
		if len(terms) > 0 && !b.matchesAnyField(item, terms) {
			continue
		}
		candidates = append(candidates, item)
	}
	return candidates, nil
}

// Suggestions collects titles and tags starting with the prefix, weighted
// by item popularity so high-traffic content surfaces first, then ordered
// alphabetically for a stable tail.
func (b *base) Suggestions(ctx context.Context, prefix string, limit int) ([]string, error) {
	if prefix == "" || limit <= 0 {
		return nil, nil
	}

	items := b.store.BySource(ctx, b.sourceType)

	weights := make(map[string]float64)
	for _, item := range items {
		if !item.IsVisible {
			continue
		}
		if strings.HasPrefix(strings.ToLower(item.Title), prefix) {
			if _, seen := weights[item.Title]; !seen || item.PopularityScore+1 > weights[item.Title] {
				weights[item.Title] = item.PopularityScore + 1
			}
		}
	}
	for tag, count := range TagCounts(items, prefix) {
		if _, seen := weights[tag]; !seen {
			weights[tag] = count
		}
	}

	suggestions := make([]string, 0, len(weights))
	for s := range weights {
		suggestions = append(suggestions, s)
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if weights[suggestions[i]] != weights[suggestions[j]] {
			return weights[suggestions[i]] > weights[suggestions[j]]
		}
		return suggestions[i] < suggestions[j]
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// categoryMatches accepts an item when the filter is empty, names the
// item's own category, or names the adapter's section key (e.g. "articles").
func (b *base) categoryMatches(item domain.SearchableItem, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	sectionKey := format.CategoryKey(b.sourceType)
	for _, c := range categories {
		if strings.EqualFold(c, item.Category) || c == sectionKey {
			return true
		}
	}
	return false
}

// matchesAnyField reports whether any term appears in any declared field,
// case-insensitive substring containment against sanitized text.
func (b *base) matchesAnyField(item domain.SearchableItem, terms []string) bool {
	for _, fw := range b.weights {
		text := strings.ToLower(domain.FieldText(item, fw.Field))
		if text == "" {
			continue
		}
		for _, term := range terms {
			if strings.Contains(text, term) {
				return true
			}
		}
	}
	return false
}

// sanitizeField runs one field through the pipeline, failing closed: on a
// validation failure the field is excluded from the index and the failure
// is logged, never surfaced raw.
func (b *base) sanitizeField(id, field, raw string) string {
	clean, err := b.pipeline.SanitizeField(field, raw)
	if err != nil {
		metrics.SanitizationFailuresTotal.Inc()
		logger.Logger.Warn("field excluded from index",
			"source_type", b.sourceType,
			"id", id,
			"field", field,
			"err", (&domain.SanitizationError{Field: field, Reason: err.Error()}).Error(),
		)
		return ""
	}
	return clean
}

// finishItem applies the invariants every adapter shares: an item whose
// searchable text sanitized away entirely is never made visible.
func (b *base) finishItem(item domain.SearchableItem) domain.SearchableItem {
	if item.Title == "" && item.Excerpt == "" && item.Body == "" && len(item.Tags) == 0 {
		item.IsVisible = false
	}
	return item
}
