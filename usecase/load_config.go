package usecase

import (
	"context"

	"search-hub/domain"
	"search-hub/port"
)

// LoadConfigUsecase handles loading the scoring configuration
type LoadConfigUsecase struct {
	configRepo port.ConfigRepository
}

// LoadConfigResult represents the result of loading configuration
type LoadConfigResult struct {
	Scoring *domain.ScoringConfig
}

// NewLoadConfigUsecase creates a new LoadConfigUsecase
func NewLoadConfigUsecase(configRepo port.ConfigRepository) *LoadConfigUsecase {
	return &LoadConfigUsecase{
		configRepo: configRepo,
	}
}

// Execute loads the configuration
func (u *LoadConfigUsecase) Execute(ctx context.Context) (*LoadConfigResult, error) {
	scoring, err := u.configRepo.LoadScoringConfig()
	if err != nil {
		return nil, err
	}

	return &LoadConfigResult{
		Scoring: scoring,
	}, nil
}
