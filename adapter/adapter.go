// Package adapter provides one source adapter per content type. Adapters
// declare their searchable fields and weights, apply the visibility
// predicate, and map raw content records into sanitized searchable items.
// The scorer and formatter never branch on source type; everything
// type-specific lives behind this interface.
package adapter

import (
	"context"

	"search-hub/domain"
)

// SourceAdapter is the per-content-type contract.
type SourceAdapter interface {
	SourceType() domain.SourceType
	// FieldWeights declares the searchable fields and their scoring
	// weights. The numbers are tunable configuration, not contracts.
	FieldWeights() []domain.FieldWeight
	// MapRecord converts a raw content record into a searchable item,
	// sanitizing every text field. Fields that cannot be made safe are
	// excluded, never indexed raw.
	MapRecord(record domain.ContentRecord) (domain.SearchableItem, error)
	// FetchCandidates returns visible items where at least one term
	// appears in at least one declared field. Matching runs against
	// already-sanitized text only.
	FetchCandidates(ctx context.Context, terms []string, categories []string) ([]domain.SearchableItem, error)
	// Suggestions returns titles and tags matching the prefix, without
	// full scoring.
	Suggestions(ctx context.Context, prefix string, limit int) ([]string, error)
}

// Registry holds the registered adapters in a lookup table keyed by source
// type, preserving registration order for deterministic fan-out.
type Registry struct {
	adapters map[domain.SourceType]SourceAdapter
	order    []domain.SourceType
}

func NewRegistry(adapters ...SourceAdapter) *Registry {
	r := &Registry{adapters: make(map[domain.SourceType]SourceAdapter, len(adapters))}
	for _, a := range adapters {
		if _, dup := r.adapters[a.SourceType()]; dup {
			continue
		}
		r.adapters[a.SourceType()] = a
		r.order = append(r.order, a.SourceType())
	}
	return r
}

// Get resolves the adapter owning a source type.
func (r *Registry) Get(sourceType domain.SourceType) (SourceAdapter, bool) {
	a, ok := r.adapters[sourceType]
	return a, ok
}

// All returns every adapter in registration order.
func (r *Registry) All() []SourceAdapter {
	out := make([]SourceAdapter, 0, len(r.order))
	for _, st := range r.order {
		out = append(out, r.adapters[st])
	}
	return out
}

// FieldWeights collects every adapter's weight table, the shape the scorer
// is constructed with.
func (r *Registry) FieldWeights() map[domain.SourceType][]domain.FieldWeight {
	out := make(map[domain.SourceType][]domain.FieldWeight, len(r.adapters))
	for st, a := range r.adapters {
		out[st] = a.FieldWeights()
	}
	return out
}
