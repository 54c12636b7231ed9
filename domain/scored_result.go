package domain

// HighlightSpan marks a byte range of the excerpt matched by a query term.
type HighlightSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ScoredResult pairs an item with its computed relevance score.
type ScoredResult struct {
	Item           SearchableItem  `json:"item"`
	Score          float64         `json:"score"`
	HighlightSpans []HighlightSpan `json:"highlight_spans"`
}

// Less implements the total result order: score descending, featured
// descending, recency descending, then id ascending as the unconditional
// final tie-breaker. The id comparison guarantees reproducible pagination.
func (r ScoredResult) Less(other ScoredResult) bool {
	if r.Score != other.Score {
		return r.Score > other.Score
	}
	if r.Item.IsFeatured != other.Item.IsFeatured {
		return r.Item.IsFeatured
	}
	ra, rb := r.Item.Recency(), other.Item.Recency()
	if !ra.Equal(rb) {
		return ra.After(rb)
	}
	if r.Item.SourceType != other.Item.SourceType {
		return r.Item.SourceType < other.Item.SourceType
	}
	return r.Item.ID < other.Item.ID
}
