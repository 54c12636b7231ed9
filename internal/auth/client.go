// Package auth provides service-to-service JWT auth for the internal write
// endpoints. Content owners authenticate with a short-lived HS256 token
// signed with the shared service secret; public read endpoints are
// unauthenticated and protected by the rate limiter instead.
package auth

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Config struct {
	ServiceName   string
	ServiceSecret string
	TokenTTL      time.Duration
}

// ConfigFromEnv loads the auth configuration. The secret supports the
// _FILE suffix for Docker Secrets.
func ConfigFromEnv() (Config, error) {
	secret := os.Getenv("SERVICE_SECRET")
	if secretFile := os.Getenv("SERVICE_SECRET_FILE"); secretFile != "" {
		if content, err := os.ReadFile(secretFile); err == nil {
			secret = strings.TrimSpace(string(content))
		}
	}
	if secret == "" {
		return Config{}, fmt.Errorf("SERVICE_SECRET is not set")
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "search-hub"
	}

	return Config{
		ServiceName:   serviceName,
		ServiceSecret: secret,
		TokenTTL:      15 * time.Minute,
	}, nil
}

// ServiceClaims are the claims carried by a service token.
type ServiceClaims struct {
	ServiceName string `json:"service_name"`
	jwt.RegisteredClaims
}

// TokenService issues and validates service tokens.
type TokenService struct {
	config Config
}

func NewTokenService(config Config) *TokenService {
	return &TokenService{config: config}
}

// Generate issues a token for outbound service calls.
func (s *TokenService) Generate() (string, error) {
	now := time.Now()
	claims := ServiceClaims{
		ServiceName: s.config.ServiceName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.ServiceName,
			Subject:   s.config.ServiceName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.ServiceSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate checks an inbound service token against the shared secret.
func (s *TokenService) Validate(tokenString string) (*ServiceClaims, error) {
	claims := &ServiceClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.ServiceSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.ServiceName == "" {
		return nil, fmt.Errorf("token carries no service name")
	}
	return claims, nil
}
