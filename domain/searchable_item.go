package domain

import "time"

// SearchableItem is the canonical indexed unit. Every text field holds
// sanitized plain text; adapters must never store raw markup here.
// PopularityScore is mutated only by analytics feedback, never by scoring.
type SearchableItem struct {
	ID              string     `json:"id"`
	SourceType      SourceType `json:"source_type"`
	Title           string     `json:"title"`
	Excerpt         string     `json:"excerpt"`
	Body            string     `json:"body"`
	Tags            []string   `json:"tags"`
	Category        string     `json:"category"`
	Meta            string     `json:"meta,omitempty"`
	IsVisible       bool       `json:"is_visible"`
	IsFeatured      bool       `json:"is_featured"`
	PopularityScore float64    `json:"popularity_score"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CanonicalURL    string     `json:"canonical_url"`
}

// Key returns the source-type-scoped identity, unique across the whole index.
func (s SearchableItem) Key() string {
	return string(s.SourceType) + ":" + s.ID
}

// Recency returns the timestamp used for recency decay and tie-breaking.
func (s SearchableItem) Recency() time.Time {
	if s.UpdatedAt.After(s.CreatedAt) {
		return s.UpdatedAt
	}
	return s.CreatedAt
}

// Clone returns a deep copy so callers can hand items across goroutines
// without sharing the tags slice.
func (s SearchableItem) Clone() SearchableItem {
	out := s
	if s.Tags != nil {
		out.Tags = make([]string, len(s.Tags))
		copy(out.Tags, s.Tags)
	}
	return out
}

// HasTag reports whether the item carries the given tag.
func (s SearchableItem) HasTag(tag string) bool {
	if tag == "" {
		return false
	}
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
