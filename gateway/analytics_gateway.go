package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"search-hub/domain"
	"search-hub/logger"
	"search-hub/metrics"
)

const (
	popularQueriesKey = "search:popular:queries"
	recentEventsKey   = "search:analytics:events"
	recentEventsMax   = 1000
)

// AnalyticsGateway implements port.AnalyticsRecorder. Record hands the entry
// to a buffered channel and returns immediately; a single worker drains the
// channel into Redis. A full buffer drops the entry — losing a popularity
// signal is acceptable, delaying a search response is not.
type AnalyticsGateway struct {
	client *redis.Client
	queue  chan domain.QueryLogEntry
	done   chan struct{}
}

func NewAnalyticsGateway(client *redis.Client, bufferSize int) *AnalyticsGateway {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &AnalyticsGateway{
		client: client,
		queue:  make(chan domain.QueryLogEntry, bufferSize),
		done:   make(chan struct{}),
	}
}

// Start launches the drain worker. It runs until ctx is cancelled, then
// flushes whatever is still queued.
func (g *AnalyticsGateway) Start(ctx context.Context) {
	go func() {
		defer close(g.done)
		for {
			select {
			case entry := <-g.queue:
				g.persist(entry)
			case <-ctx.Done():
				g.drain()
				return
			}
		}
	}()
}

// Stop waits for the worker to finish its final flush.
func (g *AnalyticsGateway) Stop() {
	<-g.done
}

// Record enqueues without blocking. Failures never propagate to the caller.
func (g *AnalyticsGateway) Record(entry domain.QueryLogEntry) {
	select {
	case g.queue <- entry:
	default:
		metrics.AnalyticsDroppedTotal.Inc()
	}
}

// PopularQueries returns the top ranked recent query terms.
func (g *AnalyticsGateway) PopularQueries(ctx context.Context, limit int) ([]domain.PopularQuery, error) {
	if limit <= 0 {
		limit = 10
	}

	entries, err := g.client.ZRevRangeWithScores(ctx, popularQueriesKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, &DriverError{Op: "Analytics.PopularQueries", Err: err.Error()}
	}

	queries := make([]domain.PopularQuery, 0, len(entries))
	for _, e := range entries {
		term, ok := e.Member.(string)
		if !ok {
			continue
		}
		queries = append(queries, domain.PopularQuery{Term: term, Count: e.Score})
	}
	return queries, nil
}

func (g *AnalyticsGateway) persist(entry domain.QueryLogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	raw, err := json.Marshal(entry)
	if err != nil {
		logger.Logger.Error("analytics entry marshal failed", "err", err)
		return
	}

	_, err = g.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, term := range entry.Terms {
			pipe.ZIncrBy(ctx, popularQueriesKey, 1, term)
		}
		pipe.LPush(ctx, recentEventsKey, raw)
		pipe.LTrim(ctx, recentEventsKey, 0, recentEventsMax-1)
		return nil
	})
	if err != nil {
		logger.Logger.Error("analytics persist failed", "err", err)
	}
}

func (g *AnalyticsGateway) drain() {
	for {
		select {
		case entry := <-g.queue:
			g.persist(entry)
		default:
			return
		}
	}
}
