package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const suggestKeyPrefix = "search:suggest:"

// SuggestCacheGateway implements port.SuggestionCache over Redis with a
// short TTL. Content writes do not enumerate affected prefixes; entries
// simply expire, and staleness up to one TTL window is accepted.
type SuggestCacheGateway struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSuggestCacheGateway(client *redis.Client, ttl time.Duration) *SuggestCacheGateway {
	return &SuggestCacheGateway{client: client, ttl: ttl}
}

func (g *SuggestCacheGateway) Get(ctx context.Context, prefix string) ([]string, bool, error) {
	raw, err := g.client.Get(ctx, suggestKeyPrefix+prefix).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &DriverError{Op: "SuggestCache.Get", Err: err.Error()}
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		// A corrupt entry is treated as a miss and will be overwritten.
		return nil, false, nil
	}
	return suggestions, true, nil
}

func (g *SuggestCacheGateway) Set(ctx context.Context, prefix string, suggestions []string) error {
	raw, err := json.Marshal(suggestions)
	if err != nil {
		return &DriverError{Op: "SuggestCache.Set", Err: err.Error()}
	}
	if err := g.client.Set(ctx, suggestKeyPrefix+prefix, raw, g.ttl).Err(); err != nil {
		return &DriverError{Op: "SuggestCache.Set", Err: err.Error()}
	}
	return nil
}
