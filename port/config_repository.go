package port

import "search-hub/domain"

// ConfigRepository loads the immutable scoring configuration the scorer and
// limiter are constructed with. Scoring never reads ambient state after
// construction.
type ConfigRepository interface {
	LoadScoringConfig() (*domain.ScoringConfig, error)
}

type RepositoryError struct {
	Op  string
	Err string
}

func (e *RepositoryError) Error() string {
	return e.Op + ": " + e.Err
}
