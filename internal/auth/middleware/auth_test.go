package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-hub/internal/auth"
)

func newTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	return auth.NewTokenService(auth.Config{
		ServiceName:   "content-hub",
		ServiceSecret: "test-secret",
		TokenTTL:      time.Minute,
	})
}

func invokeProtected(t *testing.T, m *AuthMiddleware, decorate func(*http.Request)) error {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/reindex", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	handler := m.RequireServiceAuth()(func(c echo.Context) error {
		claims, ok := c.Request().Context().Value(ServiceContextKey).(*auth.ServiceClaims)
		require.True(t, ok, "claims are available to the protected handler")
		assert.Equal(t, "content-hub", claims.ServiceName)
		return c.NoContent(http.StatusAccepted)
	})
	return handler(c)
}

func TestRequireServiceAuth_ValidTokenHeaders(t *testing.T) {
	tokens := newTokenService(t)
	m := NewAuthMiddleware(tokens)

	token, err := tokens.Generate()
	require.NoError(t, err)

	err = invokeProtected(t, m, func(req *http.Request) {
		req.Header.Set("X-Service-Token", token)
	})
	assert.NoError(t, err)

	err = invokeProtected(t, m, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.NoError(t, err)
}

func TestRequireServiceAuth_MissingToken(t *testing.T) {
	m := NewAuthMiddleware(newTokenService(t))

	err := invokeProtected(t, m, nil)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireServiceAuth_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(newTokenService(t))

	other := auth.NewTokenService(auth.Config{
		ServiceName:   "content-hub",
		ServiceSecret: "wrong-secret",
		TokenTTL:      time.Minute,
	})
	forged, err := other.Generate()
	require.NoError(t, err)

	err = invokeProtected(t, m, func(req *http.Request) {
		req.Header.Set("X-Service-Token", forged)
	})
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
