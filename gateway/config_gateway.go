package gateway

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"search-hub/domain"
	"search-hub/port"
)

// ConfigGateway implements the configuration repository port. It builds the
// immutable ScoringConfig passed into the scorer at construction time; the
// scorer never reads the environment afterwards.
type ConfigGateway struct{}

// NewConfigGateway creates a new ConfigGateway
func NewConfigGateway() *ConfigGateway {
	return &ConfigGateway{}
}

// LoadScoringConfig reads the scoring tuning knobs from the environment,
// falling back to the defaults validated by the ranking tests.
func (g *ConfigGateway) LoadScoringConfig() (*domain.ScoringConfig, error) {
	cfg, err := domain.NewScoringConfig(
		intEnv("OCCURRENCE_CAP", 3),
		floatEnv("FEATURED_BOOST", 1.5),
		durationEnv("RECENCY_FRESH_WINDOW", 30*24*time.Hour),
		durationEnv("RECENCY_HALF_LIFE", 180*24*time.Hour),
		floatEnv("RECENCY_FLOOR", 0.1),
		floatEnv("POPULARITY_WEIGHT", 2.0),
		floatEnv("POPULARITY_CAP", 10.0),
	)
	if err != nil {
		return nil, &port.RepositoryError{
			Op:  "LoadScoringConfig",
			Err: fmt.Sprintf("invalid scoring configuration: %v", err),
		}
	}
	return cfg, nil
}

func intEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func floatEnv(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func durationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
