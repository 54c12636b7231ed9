package adapter

import (
	"sort"
	"strings"

	"search-hub/domain"
)

// TagCounts counts how many visible items carry each tag matching the
// prefix. Pass an empty prefix to count every tag. Shared by every
// adapter's suggestion path; the per-content-area duplicates this replaces
// each computed the same thing.
func TagCounts(items []domain.SearchableItem, prefix string) map[string]float64 {
	counts := make(map[string]float64)
	for _, item := range items {
		if !item.IsVisible {
			continue
		}
		for _, tag := range item.Tags {
			if prefix != "" && !strings.HasPrefix(strings.ToLower(tag), prefix) {
				continue
			}
			counts[tag]++
		}
	}
	return counts
}

// PopularTags returns the most frequent tags across the given items, count
// descending then alphabetical.
func PopularTags(items []domain.SearchableItem, limit int) []string {
	counts := TagCounts(items, "")

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})

	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}
