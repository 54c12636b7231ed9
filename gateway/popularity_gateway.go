package gateway

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"search-hub/domain"
)

const popularityKey = "search:popularity"

// PopularityGateway implements port.PopularityRepository over a Redis hash
// keyed by source-type-scoped item identity. The hash survives restarts, so
// reindexed items keep their accumulated popularity.
type PopularityGateway struct {
	client *redis.Client
}

func NewPopularityGateway(client *redis.Client) *PopularityGateway {
	return &PopularityGateway{client: client}
}

func (g *PopularityGateway) Increment(ctx context.Context, sourceType domain.SourceType, id string, delta float64) (float64, error) {
	score, err := g.client.HIncrByFloat(ctx, popularityKey, field(sourceType, id), delta).Result()
	if err != nil {
		return 0, &DriverError{Op: "Popularity.Increment", Err: err.Error()}
	}
	return score, nil
}

func (g *PopularityGateway) Load(ctx context.Context, sourceType domain.SourceType, id string) (float64, error) {
	raw, err := g.client.HGet(ctx, popularityKey, field(sourceType, id)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, &DriverError{Op: "Popularity.Load", Err: err.Error()}
	}

	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, nil
	}
	return score, nil
}

// LoadAll returns every persisted popularity score keyed "source_type:id",
// for the reindex path to hydrate a fresh snapshot in one round-trip.
func (g *PopularityGateway) LoadAll(ctx context.Context) (map[string]float64, error) {
	raw, err := g.client.HGetAll(ctx, popularityKey).Result()
	if err != nil {
		return nil, &DriverError{Op: "Popularity.LoadAll", Err: err.Error()}
	}

	scores := make(map[string]float64, len(raw))
	for key, val := range raw {
		if score, err := strconv.ParseFloat(val, 64); err == nil {
			scores[key] = score
		}
	}
	return scores, nil
}

func field(sourceType domain.SourceType, id string) string {
	return string(sourceType) + ":" + id
}
