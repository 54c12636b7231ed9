package usecase

import (
	"context"
	"unicode/utf8"

	"search-hub/adapter"
	"search-hub/logger"
	"search-hub/metrics"
	"search-hub/normalize"
	"search-hub/port"
)

// SuggestUsecase serves autocomplete. Suggestions are computed by the same
// adapters as search but without full scoring, and cached per normalized
// prefix with a short TTL. A cache failure degrades to uncached
// computation, never to a request failure.
type SuggestUsecase struct {
	normalizer *normalize.Normalizer
	registry   *adapter.Registry
	cache      port.SuggestionCache
	minPrefix  int
	maxResults int
}

func NewSuggestUsecase(normalizer *normalize.Normalizer, registry *adapter.Registry, cache port.SuggestionCache, minPrefix, maxResults int) *SuggestUsecase {
	if minPrefix < 1 {
		minPrefix = 2
	}
	if maxResults < 1 {
		maxResults = 8
	}
	return &SuggestUsecase{
		normalizer: normalizer,
		registry:   registry,
		cache:      cache,
		minPrefix:  minPrefix,
		maxResults: maxResults,
	}
}

// Execute returns suggestions for the prefix. Prefixes shorter than the
// minimum return an empty list, not an error.
func (u *SuggestUsecase) Execute(ctx context.Context, rawPrefix string) ([]string, error) {
	prefix := u.normalizer.NormalizePrefix(rawPrefix)
	if utf8.RuneCountInString(prefix) < u.minPrefix {
		return []string{}, nil
	}

	if cached, hit, err := u.cache.Get(ctx, prefix); err == nil && hit {
		metrics.SuggestCacheHits.Inc()
		return cached, nil
	} else if err != nil {
		logger.Logger.Warn("suggestion cache read failed, computing uncached", "err", err)
	}
	metrics.SuggestCacheMisses.Inc()

	suggestions, err := u.compute(ctx, prefix)
	if err != nil {
		return nil, err
	}

	if err := u.cache.Set(ctx, prefix, suggestions); err != nil {
		logger.Logger.Warn("suggestion cache write failed", "err", err)
	}
	return suggestions, nil
}

// compute merges per-adapter suggestions, deduplicates preserving best
// rank, and caps the list.
func (u *SuggestUsecase) compute(ctx context.Context, prefix string) ([]string, error) {
	var merged []string
	seen := make(map[string]struct{})

	for _, a := range u.registry.All() {
		suggestions, err := a.Suggestions(ctx, prefix, u.maxResults)
		if err != nil {
			return nil, err
		}
		for _, s := range suggestions {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			merged = append(merged, s)
		}
	}

	// Each adapter returns a popularity-ranked list; merging in
	// registration order keeps the combined order deterministic.
	if len(merged) > u.maxResults {
		merged = merged[:u.maxResults]
	}
	if merged == nil {
		merged = []string{}
	}
	return merged, nil
}
