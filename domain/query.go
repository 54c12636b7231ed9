package domain

// Query is a normalized search request. Terms are lowercased, deduplicated
// and order-preserving; CategoryFilter is empty when no filter was given.
type Query struct {
	RawText        string   `json:"raw_text"`
	Terms          []string `json:"terms"`
	CategoryFilter []string `json:"category_filter,omitempty"`
	Page           int      `json:"page"`
	PageSize       int      `json:"page_size"`
}

// HasCategoryFilter reports whether the query restricts results by category.
func (q Query) HasCategoryFilter() bool {
	return len(q.CategoryFilter) > 0
}

// MatchesCategory reports whether a category passes the filter. An empty
// filter matches everything.
func (q Query) MatchesCategory(category string) bool {
	if !q.HasCategoryFilter() {
		return true
	}
	for _, c := range q.CategoryFilter {
		if c == category {
			return true
		}
	}
	return false
}

// Offset returns the zero-based result offset for the requested page.
func (q Query) Offset() int {
	if q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}
