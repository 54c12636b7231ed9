package port

import "context"

// SuggestionCache stores computed autocomplete suggestions per normalized
// prefix with a short TTL. It is a pure performance optimization: staleness
// up to one TTL window and last-write-wins races are accepted, and a cache
// failure must degrade to uncached computation, not a request failure.
type SuggestionCache interface {
	Get(ctx context.Context, prefix string) ([]string, bool, error)
	Set(ctx context.Context, prefix string, suggestions []string) error
}
