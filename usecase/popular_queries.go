package usecase

import (
	"context"

	"search-hub/domain"
	"search-hub/port"
)

const maxPopularLimit = 50

// PopularQueriesUsecase serves the ranked recent popular query terms view.
type PopularQueriesUsecase struct {
	analytics port.AnalyticsRecorder
}

func NewPopularQueriesUsecase(analytics port.AnalyticsRecorder) *PopularQueriesUsecase {
	return &PopularQueriesUsecase{analytics: analytics}
}

func (u *PopularQueriesUsecase) Execute(ctx context.Context, limit int) ([]domain.PopularQuery, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}

	queries, err := u.analytics.PopularQueries(ctx, limit)
	if err != nil {
		return nil, err
	}
	if queries == nil {
		queries = []domain.PopularQuery{}
	}
	return queries, nil
}
