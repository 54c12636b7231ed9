package domain

import (
	"testing"
	"time"
)

func TestNewScoringConfig(t *testing.T) {
	tests := []struct {
		name             string
		occurrenceCap    int
		featuredBoost    float64
		freshWindow      time.Duration
		recencyHalfLife  time.Duration
		recencyFloor     float64
		popularityWeight float64
		popularityCap    float64
		wantErr          bool
	}{
		{
			name:             "valid config",
			occurrenceCap:    3,
			featuredBoost:    1.5,
			freshWindow:      30 * 24 * time.Hour,
			recencyHalfLife:  180 * 24 * time.Hour,
			recencyFloor:     0.1,
			popularityWeight: 2.0,
			popularityCap:    10,
			wantErr:          false,
		},
		{
			name:             "zero occurrence cap should fail",
			occurrenceCap:    0,
			featuredBoost:    1.5,
			freshWindow:      time.Hour,
			recencyHalfLife:  time.Hour,
			recencyFloor:     0.1,
			popularityWeight: 2.0,
			popularityCap:    10,
			wantErr:          true,
		},
		{
			name:             "featured boost below 1 should fail",
			occurrenceCap:    3,
			featuredBoost:    0.9,
			freshWindow:      time.Hour,
			recencyHalfLife:  time.Hour,
			recencyFloor:     0.1,
			popularityWeight: 2.0,
			popularityCap:    10,
			wantErr:          true,
		},
		{
			name:             "non-positive half-life should fail",
			occurrenceCap:    3,
			featuredBoost:    1.5,
			freshWindow:      time.Hour,
			recencyHalfLife:  0,
			recencyFloor:     0.1,
			popularityWeight: 2.0,
			popularityCap:    10,
			wantErr:          true,
		},
		{
			name:             "recency floor above 1 should fail",
			occurrenceCap:    3,
			featuredBoost:    1.5,
			freshWindow:      time.Hour,
			recencyHalfLife:  time.Hour,
			recencyFloor:     1.5,
			popularityWeight: 2.0,
			popularityCap:    10,
			wantErr:          true,
		},
		{
			name:             "negative popularity weight should fail",
			occurrenceCap:    3,
			featuredBoost:    1.5,
			freshWindow:      time.Hour,
			recencyHalfLife:  time.Hour,
			recencyFloor:     0.1,
			popularityWeight: -1,
			popularityCap:    10,
			wantErr:          true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewScoringConfig(tt.occurrenceCap, tt.featuredBoost, tt.freshWindow, tt.recencyHalfLife, tt.recencyFloor, tt.popularityWeight, tt.popularityCap)

			if tt.wantErr {
				if err == nil {
					t.Errorf("NewScoringConfig() error = nil, wantErr %v", tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("NewScoringConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if cfg.OccurrenceCap() != tt.occurrenceCap {
				t.Errorf("OccurrenceCap() = %v, want %v", cfg.OccurrenceCap(), tt.occurrenceCap)
			}
			if cfg.FeaturedBoost() != tt.featuredBoost {
				t.Errorf("FeaturedBoost() = %v, want %v", cfg.FeaturedBoost(), tt.featuredBoost)
			}
		})
	}
}

func TestDefaultScoringConfig(t *testing.T) {
	cfg := DefaultScoringConfig()

	if cfg.OccurrenceCap() != 3 {
		t.Errorf("OccurrenceCap() = %v, want 3", cfg.OccurrenceCap())
	}
	if cfg.FeaturedBoost() != 1.5 {
		t.Errorf("FeaturedBoost() = %v, want 1.5", cfg.FeaturedBoost())
	}
	if cfg.PopularityCap() != 10.0 {
		t.Errorf("PopularityCap() = %v, want 10", cfg.PopularityCap())
	}
}
