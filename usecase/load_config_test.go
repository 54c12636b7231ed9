package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-hub/domain"
)

type fakeConfigRepo struct {
	scoring *domain.ScoringConfig
	err     error
}

func (r *fakeConfigRepo) LoadScoringConfig() (*domain.ScoringConfig, error) {
	return r.scoring, r.err
}

func TestLoadConfig_Execute(t *testing.T) {
	u := NewLoadConfigUsecase(&fakeConfigRepo{scoring: domain.DefaultScoringConfig()})

	result, err := u.Execute(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.Scoring)
	assert.Equal(t, 3, result.Scoring.OccurrenceCap())
}

func TestLoadConfig_PropagatesError(t *testing.T) {
	u := NewLoadConfigUsecase(&fakeConfigRepo{err: errors.New("bad featured boost")})

	_, err := u.Execute(context.Background())
	assert.Error(t, err)
}
