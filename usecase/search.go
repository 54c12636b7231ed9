package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"search-hub/adapter"
	"search-hub/domain"
	"search-hub/format"
	"search-hub/normalize"
	"search-hub/port"
	"search-hub/score"
)

// SearchUsecase runs one ranked, paginated cross-content search: normalize,
// fan out to every adapter, score, format, and push the query to analytics
// off the response path.
type SearchUsecase struct {
	normalizer *normalize.Normalizer
	registry   *adapter.Registry
	scorer     *score.Scorer
	formatter  *format.Formatter
	analytics  port.AnalyticsRecorder
	// now is the single clock read per request; scoring is deterministic
	// given its value.
	now func() time.Time
}

// SearchOutput is the response-ready result of one search.
type SearchOutput struct {
	Results    []format.Result
	Facets     map[string]int
	Page       int
	PageSize   int
	TotalCount int
}

func NewSearchUsecase(
	normalizer *normalize.Normalizer,
	registry *adapter.Registry,
	scorer *score.Scorer,
	formatter *format.Formatter,
	analytics port.AnalyticsRecorder,
) *SearchUsecase {
	return &SearchUsecase{
		normalizer: normalizer,
		registry:   registry,
		scorer:     scorer,
		formatter:  formatter,
		analytics:  analytics,
		now:        time.Now,
	}
}

// Execute runs a search. An empty query with no category filter fails with
// InvalidQueryError; a query matching nothing returns an empty result set,
// which is not an error.
func (u *SearchUsecase) Execute(ctx context.Context, rawQuery string, categories []string, page, pageSize int, clientFingerprint string) (*SearchOutput, error) {
	query, err := u.normalizer.Normalize(rawQuery, categories, page, pageSize)
	if err != nil {
		return nil, err
	}

	candidates, err := u.fetchCandidates(ctx, query)
	if err != nil {
		return nil, err
	}

	scored := u.scorer.Score(query, candidates, u.now())

	total := len(scored)
	pageSlice := paginate(scored, query.Offset(), query.PageSize)

	out := &SearchOutput{
		Results:    u.formatter.Format(pageSlice),
		Facets:     format.Facets(scored),
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalCount: total,
	}

	// Off the response path: Record never blocks.
	u.analytics.Record(domain.QueryLogEntry{
		Terms:             query.Terms,
		ResultCount:       total,
		Timestamp:         u.now(),
		ClientFingerprint: clientFingerprint,
	})

	return out, nil
}

// fetchCandidates fans out to every registered adapter concurrently and
// merges their candidate sets. Scoring holds no shared state, so the only
// synchronization is the merge.
func (u *SearchUsecase) fetchCandidates(ctx context.Context, query domain.Query) ([]domain.SearchableItem, error) {
	var mu sync.Mutex
	var candidates []domain.SearchableItem

	g, gctx := errgroup.WithContext(ctx)
	for _, a := range u.registry.All() {
		g.Go(func() error {
			items, err := a.FetchCandidates(gctx, query.Terms, query.CategoryFilter)
			if err != nil {
				return err
			}
			mu.Lock()
			candidates = append(candidates, items...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return candidates, nil
}

func paginate(scored []domain.ScoredResult, offset, pageSize int) []domain.ScoredResult {
	if offset >= len(scored) {
		return nil
	}
	end := offset + pageSize
	if end > len(scored) {
		end = len(scored)
	}
	return scored[offset:end]
}
