package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Search    SearchConfig
	Suggest   SuggestConfig
	RateLimit RateLimitConfig
	HTTP      HTTPConfig
}

// DatabaseConfig configures the read-only connection to the content
// collaborator's database.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	Timeout  time.Duration
	SSL      SSLConfig
}

type SSLConfig struct {
	Mode     string
	RootCert string
	Cert     string
	Key      string
}

type RedisConfig struct {
	URL     string
	Timeout time.Duration
}

// SearchConfig bounds query shape and result pages.
type SearchConfig struct {
	MaxTerms             int
	MaxPageSize          int
	DefaultPageSize      int
	ExcerptDisplayLength int
	FieldMaxLength       int
	IndexBatchSize       int
}

type SuggestConfig struct {
	MinPrefix  int
	MaxResults int
	CacheTTL   time.Duration
}

type RateLimitConfig struct {
	PerWindow int
	Window    time.Duration
}

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
}

func Load() (*Config, error) {
	dbConfig := &DatabaseConfig{
		Host:     getEnvRequired("DB_HOST"),
		Port:     getEnvRequired("DB_PORT"),
		Name:     getEnvRequired("DB_NAME"),
		User:     getEnvRequired("SEARCH_HUB_DB_USER"),
		Password: getEnvRequired("SEARCH_HUB_DB_PASSWORD"),
		Timeout:  10 * time.Second,
		SSL: SSLConfig{
			Mode:     getEnvOrDefault("DB_SSL_MODE", "prefer"),
			RootCert: getEnvOrDefault("DB_SSL_ROOT_CERT", ""),
			Cert:     getEnvOrDefault("DB_SSL_CERT", ""),
			Key:      getEnvOrDefault("DB_SSL_KEY", ""),
		},
	}

	if err := dbConfig.ValidateSSLConfig(); err != nil {
		slog.Error("Invalid SSL configuration", "error", err)
		return nil, fmt.Errorf("SSL configuration error: %w", err)
	}

	cfg := &Config{
		Database: *dbConfig,
		Redis: RedisConfig{
			URL:     getEnvOrDefault("REDIS_URL", "redis://localhost:6379"),
			Timeout: 5 * time.Second,
		},
		Search: SearchConfig{
			MaxTerms:             intEnv("MAX_TERMS", 20),
			MaxPageSize:          intEnv("MAX_PAGE_SIZE", 50),
			DefaultPageSize:      intEnv("DEFAULT_PAGE_SIZE", 20),
			ExcerptDisplayLength: intEnv("EXCERPT_DISPLAY_LENGTH", 160),
			FieldMaxLength:       intEnv("FIELD_MAX_LENGTH", 10000),
			IndexBatchSize:       IndexBatchSize,
		},
		Suggest: SuggestConfig{
			MinPrefix:  intEnv("SUGGEST_MIN_PREFIX", 2),
			MaxResults: intEnv("SUGGEST_MAX", 8),
			CacheTTL:   durationEnv("SUGGEST_CACHE_TTL", 15*time.Minute),
		},
		RateLimit: RateLimitConfig{
			PerWindow: intEnv("RATE_LIMIT_PER_MINUTE", 30),
			Window:    durationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
		HTTP: HTTPConfig{
			Addr:              HTTPAddr,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	slog.Info("Configuration loaded",
		"db_host", cfg.Database.Host,
		"db_sslmode", cfg.Database.SSL.Mode,
		"http_addr", cfg.HTTP.Addr,
	)

	return cfg, nil
}

func (c *DatabaseConfig) GetDatabaseConnectionString() string {
	baseConn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSL.Mode,
	)

	if c.SSL.RootCert != "" {
		baseConn += fmt.Sprintf(" sslrootcert=%s", c.SSL.RootCert)
	}
	if c.SSL.Cert != "" {
		baseConn += fmt.Sprintf(" sslcert=%s", c.SSL.Cert)
	}
	if c.SSL.Key != "" {
		baseConn += fmt.Sprintf(" sslkey=%s", c.SSL.Key)
	}

	return baseConn
}

func (c *DatabaseConfig) GetDatabaseURL() string {
	baseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)

	params := fmt.Sprintf("?sslmode=%s", c.SSL.Mode)

	if c.SSL.RootCert != "" {
		params += fmt.Sprintf("&sslrootcert=%s", c.SSL.RootCert)
	}
	if c.SSL.Cert != "" {
		params += fmt.Sprintf("&sslcert=%s", c.SSL.Cert)
	}
	if c.SSL.Key != "" {
		params += fmt.Sprintf("&sslkey=%s", c.SSL.Key)
	}

	return baseURL + params
}

func (c *DatabaseConfig) ValidateSSLConfig() error {
	switch c.SSL.Mode {
	case "disable":
		return fmt.Errorf("SSL disable mode is not allowed")
	case "allow", "prefer":
		return nil
	case "require":
		return nil
	case "verify-ca", "verify-full":
		if c.SSL.RootCert == "" {
			return fmt.Errorf("SSL root certificate required for mode %s", c.SSL.Mode)
		}
		return nil
	default:
		return fmt.Errorf("invalid SSL mode: %s", c.SSL.Mode)
	}
}

func getEnvRequired(key string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
