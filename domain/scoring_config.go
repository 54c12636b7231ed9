package domain

import (
	"fmt"
	"time"
)

// ScoringConfig is the immutable tuning surface of the relevance scorer.
// It is constructed once at bootstrap and passed into the scorer; scoring
// never reads ambient global state.
type ScoringConfig struct {
	occurrenceCap    int
	featuredBoost    float64
	freshWindow      time.Duration
	recencyHalfLife  time.Duration
	recencyFloor     float64
	popularityWeight float64
	popularityCap    float64
}

// NewScoringConfig validates and builds a ScoringConfig.
func NewScoringConfig(occurrenceCap int, featuredBoost float64, freshWindow, recencyHalfLife time.Duration, recencyFloor, popularityWeight, popularityCap float64) (*ScoringConfig, error) {
	if occurrenceCap < 1 {
		return nil, fmt.Errorf("occurrence cap must be at least 1, got %d", occurrenceCap)
	}
	if featuredBoost < 1.0 {
		return nil, fmt.Errorf("featured boost must be >= 1.0, got %g", featuredBoost)
	}
	if recencyHalfLife <= 0 {
		return nil, fmt.Errorf("recency half-life must be positive, got %s", recencyHalfLife)
	}
	if recencyFloor <= 0 || recencyFloor > 1 {
		return nil, fmt.Errorf("recency floor must be in (0, 1], got %g", recencyFloor)
	}
	if popularityWeight < 0 {
		return nil, fmt.Errorf("popularity weight cannot be negative, got %g", popularityWeight)
	}
	if popularityCap < 0 {
		return nil, fmt.Errorf("popularity cap cannot be negative, got %g", popularityCap)
	}

	return &ScoringConfig{
		occurrenceCap:    occurrenceCap,
		featuredBoost:    featuredBoost,
		freshWindow:      freshWindow,
		recencyHalfLife:  recencyHalfLife,
		recencyFloor:     recencyFloor,
		popularityWeight: popularityWeight,
		popularityCap:    popularityCap,
	}, nil
}

// DefaultScoringConfig returns the tuning defaults validated by the ranking
// tests. The numbers are deployment configuration, not contracts.
func DefaultScoringConfig() *ScoringConfig {
	cfg, err := NewScoringConfig(3, 1.5, 30*24*time.Hour, 180*24*time.Hour, 0.1, 2.0, 10.0)
	if err != nil {
		panic(err)
	}
	return cfg
}

// OccurrenceCap bounds per-term per-field occurrence counting so keyword
// stuffing cannot dominate.
func (c *ScoringConfig) OccurrenceCap() int {
	return c.occurrenceCap
}

// FeaturedBoost is the multiplier applied to featured items.
func (c *ScoringConfig) FeaturedBoost() float64 {
	return c.featuredBoost
}

// FreshWindow is the age below which no recency decay applies.
func (c *ScoringConfig) FreshWindow() time.Duration {
	return c.freshWindow
}

// RecencyHalfLife is the age past the fresh window at which the recency
// factor halves.
func (c *ScoringConfig) RecencyHalfLife() time.Duration {
	return c.recencyHalfLife
}

// RecencyFloor is the minimum recency factor; old content never decays to zero.
func (c *ScoringConfig) RecencyFloor() float64 {
	return c.recencyFloor
}

// PopularityWeight scales the log-dampened popularity term.
func (c *ScoringConfig) PopularityWeight() float64 {
	return c.popularityWeight
}

// PopularityCap bounds the popularity contribution to the final score.
func (c *ScoringConfig) PopularityCap() float64 {
	return c.popularityCap
}
