package usecase

import (
	"context"

	"search-hub/domain"
	"search-hub/port"
)

// FeedbackUsecase applies the popularity signal: one feedback event bumps
// the persisted popularity hash and the live index item. This is the only
// mutator of popularity_score; the scorer only ever reads it.
type FeedbackUsecase struct {
	popularity port.PopularityRepository
	store      port.IndexStore
}

func NewFeedbackUsecase(popularity port.PopularityRepository, store port.IndexStore) *FeedbackUsecase {
	return &FeedbackUsecase{popularity: popularity, store: store}
}

// Execute records one feedback event for an indexed item. Feedback for an
// unknown item is ignored rather than failed: the item may simply have been
// deleted since the caller saw it.
func (u *FeedbackUsecase) Execute(ctx context.Context, sourceType domain.SourceType, id string) error {
	if _, err := domain.ParseSourceType(string(sourceType)); err != nil {
		return domain.NewInvalidQueryError(err.Error())
	}
	if id == "" {
		return domain.NewInvalidQueryError("feedback requires an item id")
	}

	if _, ok := u.store.Get(ctx, sourceType, id); !ok {
		return nil
	}

	score, err := u.popularity.Increment(ctx, sourceType, id, 1)
	if err != nil {
		return err
	}

	u.store.SetPopularity(ctx, sourceType, id, score)
	return nil
}
