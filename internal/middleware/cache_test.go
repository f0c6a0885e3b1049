package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating-platform/internal/config"
)

func cacheCtx(userID uint64) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/stores", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/stores")
	if userID != 0 {
		c.Set(ctxUserID, userID)
	}
	return c
}

// Store listings embed the caller's own rating, so two users hitting
// the same route must never share a cache entry.
func TestCacheKeySeparatesUsers(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_user"}

	keyA := cacheKeyFrom(cfg, cacheCtx(1))
	keyB := cacheKeyFrom(cfg, cacheCtx(2))
	anon := cacheKeyFrom(cfg, cacheCtx(0))

	require.NotEqual(t, keyA, keyB)
	require.NotEqual(t, keyA, anon)
	require.NotEqual(t, keyB, anon)
}

func TestCacheKeyStableForSameUser(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_user"}
	require.Equal(t, cacheKeyFrom(cfg, cacheCtx(1)), cacheKeyFrom(cfg, cacheCtx(1)))
}

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"items":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	require.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsShortInput(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{1, 2, 3})
	require.False(t, ok)
}

func TestCacheDisabledWithoutRedis(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/stores", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "fresh") })
	require.NoError(t, h(c))
	require.Equal(t, "fresh", rec.Body.String())
	require.Empty(t, rec.Header().Get("X-Cache"))
}
