package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/student-info-api/internal/utils"
)

const gateSecret = "gate-test-secret"

func gateRequest(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJWTAuthMissingHeader(t *testing.T) {
	t.Parallel()

	nextCalled := false
	gate := JWTAuth(gateSecret)(func(c echo.Context) error {
		nextCalled = true
		return nil
	})

	for _, header := range []string{"", "Basic dXNlcjpwYXNz", "Bearer", "Bearer "} {
		c, rec := gateRequest(t, header)
		require.NoError(t, gate(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		assert.False(t, nextCalled)
	}
}

func TestJWTAuthBadToken(t *testing.T) {
	t.Parallel()

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  5,
		"role": "student",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte(gateSecret))
	require.NoError(t, err)

	wrongKey, err := utils.NewAccessToken("not-the-gate-secret", 5, "student", 1)
	require.NoError(t, err)

	gate := JWTAuth(gateSecret)(func(c echo.Context) error {
		t.Fatal("next handler must not run")
		return nil
	})

	for name, raw := range map[string]string{
		"garbage": "not.a.token",
		"expired": expired,
		"forged":  wrongKey.Token,
	} {
		c, rec := gateRequest(t, "Bearer "+raw)
		require.NoError(t, gate(c))
		assert.Equal(t, http.StatusForbidden, rec.Code, name)
		assert.JSONEq(t, `{"error":"Forbidden"}`, rec.Body.String(), name)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	t.Parallel()

	at, err := utils.NewAccessToken(gateSecret, 42, "teacher", 1)
	require.NoError(t, err)

	var seen utils.Identity
	gate := JWTAuth(gateSecret)(func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		require.True(t, ok)
		seen = id
		return c.NoContent(http.StatusOK)
	})

	c, rec := gateRequest(t, "Bearer "+at.Token)
	require.NoError(t, gate(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), seen.UserID)
	assert.Equal(t, "teacher", seen.Role)
}

func TestIdentityFromWithoutGate(t *testing.T) {
	t.Parallel()

	c, _ := gateRequest(t, "")
	_, ok := IdentityFrom(c)
	assert.False(t, ok)
}
