// Package score computes deterministic relevance scores. A score is a pure
// function of the query, the item and its current popularity; the caller
// supplies the clock, so repeated invocations with unchanged inputs produce
// byte-identical orderings.
package score

import (
	"math"
	"sort"
	"strings"
	"time"

	"search-hub/domain"
)

// Scorer ranks candidate items. Immutable after construction; safe for
// concurrent use across requests.
type Scorer struct {
	cfg     *domain.ScoringConfig
	weights map[domain.SourceType][]domain.FieldWeight
}

// NewScorer builds a Scorer from the immutable scoring config and the
// field-weight tables declared by the registered adapters.
func NewScorer(cfg *domain.ScoringConfig, weights map[domain.SourceType][]domain.FieldWeight) *Scorer {
	return &Scorer{cfg: cfg, weights: weights}
}

// Score evaluates candidates against the query at the given instant and
// returns surviving results in the total result order. Candidates whose
// final score is zero or below are discarded, except in browse mode
// (no terms, category filter only) where items rank by popularity,
// featured status and recency alone.
func (s *Scorer) Score(q domain.Query, candidates []domain.SearchableItem, now time.Time) []domain.ScoredResult {
	results := make([]domain.ScoredResult, 0, len(candidates))

	for _, item := range candidates {
		score := s.scoreItem(q, item, now)
		if score <= 0 {
			continue
		}
		results = append(results, domain.ScoredResult{
			Item:           item,
			Score:          score,
			HighlightSpans: HighlightSpans(item.Excerpt, q.Terms),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Less(results[j])
	})
	return results
}

func (s *Scorer) scoreItem(q domain.Query, item domain.SearchableItem, now time.Time) float64 {
	raw := s.rawFieldScore(q.Terms, item)

	if len(q.Terms) == 0 {
		// Browse mode: a category filter with no terms ranks the whole
		// category instead of matching keywords.
		raw = 1.0
	} else if raw <= 0 {
		return 0
	}

	if item.IsFeatured {
		raw *= s.cfg.FeaturedBoost()
	}
	raw *= s.recencyFactor(now.Sub(item.Recency()))
	raw += s.popularityTerm(item.PopularityScore)
	return raw
}

// rawFieldScore sums field_weight × min(occurrences, cap) over every
// term and weighted field. Matching is case-insensitive substring
// containment against sanitized text.
func (s *Scorer) rawFieldScore(terms []string, item domain.SearchableItem) float64 {
	weights := s.weights[item.SourceType]
	if len(weights) == 0 || len(terms) == 0 {
		return 0
	}

	raw := 0.0
	for _, fw := range weights {
		text := strings.ToLower(domain.FieldText(item, fw.Field))
		if text == "" {
			continue
		}
		for _, term := range terms {
			n := strings.Count(text, term)
			if n == 0 {
				continue
			}
			if n > s.cfg.OccurrenceCap() {
				n = s.cfg.OccurrenceCap()
			}
			raw += fw.Weight * float64(n)
		}
	}
	return raw
}

// recencyFactor is monotonically non-increasing in age: 1.0 inside the
// fresh window, then exponential half-life decay down to the floor.
func (s *Scorer) recencyFactor(age time.Duration) float64 {
	if age <= s.cfg.FreshWindow() {
		return 1.0
	}

	excess := age - s.cfg.FreshWindow()
	f := math.Pow(0.5, float64(excess)/float64(s.cfg.RecencyHalfLife()))
	if f < s.cfg.RecencyFloor() {
		return s.cfg.RecencyFloor()
	}
	return f
}

// popularityTerm is a bounded log-scaled addition so high-traffic items gain
// a small capped advantage rather than dominating keyword relevance.
func (s *Scorer) popularityTerm(popularity float64) float64 {
	if popularity <= 0 {
		return 0
	}

	v := s.cfg.PopularityWeight() * math.Log10(1+popularity)
	if v > s.cfg.PopularityCap() {
		return s.cfg.PopularityCap()
	}
	return v
}
