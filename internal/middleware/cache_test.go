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

func TestEncodeDecodePayload(t *testing.T) {
	t.Parallel()

	hdr := http.Header{"Content-Type": {"application/json"}, "X-Custom": {"a", "b"}}
	body := []byte(`[{"id":1}]`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	t.Parallel()

	for _, bs := range [][]byte{nil, {}, {0, 0, 0}, {0, 0, 0, 200, 0, 0, 0, 99}} {
		_, _, _, ok := decodePayload(bs)
		assert.False(t, ok)
	}
}

func TestCacheKeyIgnoresIdentity(t *testing.T) {
	t.Parallel()

	cfg := config.CacheConfig{Prefix: "sis-cache", KeyStrategy: "route_query"}

	e := echo.New()
	mk := func(uid uint64) string {
		req := httptest.NewRequest(http.MethodGet, "/api/students?term=fall", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/api/students")
		c.Set(CtxUserID, uid)
		return cacheKeyFrom(cfg, c)
	}

	// Two different callers share the same cache entry for the same route.
	assert.Equal(t, mk(1), mk(2))

	req := httptest.NewRequest(http.MethodGet, "/api/students?term=spring", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/students")
	assert.NotEqual(t, mk(1), cacheKeyFrom(cfg, c))
}

// A body that overflowed the capture limit must never be stored: replaying
// a truncated 200 would hand clients corrupt JSON.
func TestShouldStoreSkipsOversizedBodies(t *testing.T) {
	t.Parallel()

	assert.True(t, shouldStore(http.StatusOK, 100, 1024))
	assert.True(t, shouldStore(http.StatusOK, 1024, 1024))
	assert.True(t, shouldStore(http.StatusOK, 5000, 0)) // no limit configured
	assert.False(t, shouldStore(http.StatusOK, 1025, 1024))
	assert.False(t, shouldStore(http.StatusNotFound, 10, 1024))
	assert.False(t, shouldStore(http.StatusInternalServerError, 10, 0))
}

func TestNewRedisCacheNilClientPassThrough(t *testing.T) {
	t.Parallel()

	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
