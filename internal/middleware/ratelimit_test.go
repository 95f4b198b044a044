package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/student-info-api/internal/config"
)

func rateCtx(t *testing.T, uid any) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
	req.RemoteAddr = "10.1.2.3:5000"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/users/login")
	if uid != nil {
		c.Set(CtxUserID, uid)
	}
	return c
}

func TestBuildRateKeyStrategies(t *testing.T) {
	t.Parallel()

	c := rateCtx(t, uint64(7))
	base := config.RateLimitConfig{Prefix: "sis-rl"}

	cases := map[string]string{
		"ip":            "sis-rl:ip:10.1.2.3",
		"user":          "sis-rl:user:7",
		"route":         "sis-rl:route:POST /api/users/login",
		"ip_route":      "sis-rl:ip:10.1.2.3:route:POST /api/users/login",
		"ip_user":       "sis-rl:ip:10.1.2.3:user:7",
		"user_route":    "sis-rl:user:7:route:POST /api/users/login",
		"ip_user_route": "sis-rl:ip:10.1.2.3:user:7:route:POST /api/users/login",
	}
	for strategy, want := range cases {
		cfg := base
		cfg.KeyStrategy = strategy
		assert.Equal(t, want, buildRateKey(cfg, c), strategy)
	}

	// Unknown strategies fall back to ip_route.
	cfg := base
	cfg.KeyStrategy = "bogus"
	assert.Equal(t, cases["ip_route"], buildRateKey(cfg, c))
}

func TestBuildRateKeyAnonymousUser(t *testing.T) {
	t.Parallel()

	cfg := config.RateLimitConfig{Prefix: "sis-rl", KeyStrategy: "user"}
	assert.Equal(t, "sis-rl:user:anon", buildRateKey(cfg, rateCtx(t, nil)))
}

func TestAsInt64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(5), asInt64(int64(5)))
	assert.Equal(t, int64(5), asInt64(5))
	assert.Equal(t, int64(5), asInt64(5.9))
	assert.Equal(t, int64(5), asInt64("5"))
	assert.Equal(t, int64(0), asInt64("nope"))
	assert.Equal(t, int64(0), asInt64(nil))
}

func TestTokenBucketDisabledPassThrough(t *testing.T) {
	t.Parallel()

	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(rateCtx(t, nil)))
	assert.True(t, called)
}
