package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/gameplay-tracker/internal/config"
)

func ctxFor(t *testing.T, target string, userID any) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/games")
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestCacheKeySeparatesUsers(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "user_route_query"}

	k7 := cacheKeyFrom(cfg, ctxFor(t, "/api/games", float64(7)), "0")
	k8 := cacheKeyFrom(cfg, ctxFor(t, "/api/games", float64(8)), "0")
	require.NotEqual(t, k7, k8)

	// Same user + same request + same generation hashes to the same key.
	again := cacheKeyFrom(cfg, ctxFor(t, "/api/games", float64(7)), "0")
	require.Equal(t, k7, again)
}

func TestCacheKeySeparatesQueries(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "user_route_query"}

	base := cacheKeyFrom(cfg, ctxFor(t, "/api/logs", float64(7)), "0")
	filtered := cacheKeyFrom(cfg, ctxFor(t, "/api/logs?gameId=3", float64(7)), "0")
	require.NotEqual(t, base, filtered)
}

func TestCacheKeySeparatesGenerations(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "user_route_query"}

	before := cacheKeyFrom(cfg, ctxFor(t, "/api/games", float64(7)), "0")
	after := cacheKeyFrom(cfg, ctxFor(t, "/api/games", float64(7)), "1")
	require.NotEqual(t, before, after)
}

func TestSubjectFallsBackToGuest(t *testing.T) {
	require.Equal(t, "guest", subject(ctxFor(t, "/api/games", nil)))
	require.Equal(t, "7", subject(ctxFor(t, "/api/games", float64(7))))
	require.Equal(t, "7", subject(ctxFor(t, "/api/games", "7")))
}

func TestEncodeDecodePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`[{"id":1}]`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	require.Equal(t, body, gotBody)

	_, _, _, ok = decodePayload([]byte("short"))
	require.False(t, ok)
}

// newCachedServer wires a miniredis-backed cache around a tiny per-user
// list API. The fake auth middleware reads the user from a header so
// tests can act as different tenants.
func newCachedServer(t *testing.T) *echo.Echo {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          30 * time.Second,
		KeyStrategy:  "user_route_query",
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}

	lists := map[string][]string{}

	e := echo.New()
	g := e.Group("/api")
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", c.Request().Header.Get("X-User"))
			return next(c)
		}
	})
	g.Use(NewRedisCache(cfg, rdb))
	g.GET("/games", func(c echo.Context) error {
		user := subject(c)
		names := lists[user]
		if names == nil {
			names = []string{}
		}
		return c.JSON(http.StatusOK, names)
	})
	g.POST("/games", func(c echo.Context) error {
		user := subject(c)
		lists[user] = append(lists[user], c.QueryParam("name"))
		return c.JSON(http.StatusOK, echo.Map{"name": c.QueryParam("name")})
	})
	return e
}

func cachedDo(e *echo.Echo, method, target, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("X-User", user)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCacheServesFreshListAfterWrite(t *testing.T) {
	e := newCachedServer(t)

	// Prime the cache, then confirm the second read is a hit.
	first := cachedDo(e, http.MethodGet, "/api/games", "7")
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, "[]", strings.TrimSpace(first.Body.String()))

	second := cachedDo(e, http.MethodGet, "/api/games", "7")
	require.Equal(t, "HIT", second.Header().Get("X-Cache"))

	create := cachedDo(e, http.MethodPost, "/api/games?name=Zelda", "7")
	require.Equal(t, http.StatusOK, create.Code)

	after := cachedDo(e, http.MethodGet, "/api/games", "7")
	require.Equal(t, http.StatusOK, after.Code)
	require.Equal(t, "MISS", after.Header().Get("X-Cache"))
	require.Equal(t, `["Zelda"]`, strings.TrimSpace(after.Body.String()))
}

func TestWriteOnlyInvalidatesWriter(t *testing.T) {
	e := newCachedServer(t)

	// Both users prime their own entries.
	cachedDo(e, http.MethodGet, "/api/games", "7")
	cachedDo(e, http.MethodGet, "/api/games", "8")

	cachedDo(e, http.MethodPost, "/api/games?name=Metroid", "7")

	// The writer sees fresh data, the other tenant keeps their entry.
	require.Equal(t, "MISS", cachedDo(e, http.MethodGet, "/api/games", "7").Header().Get("X-Cache"))
	require.Equal(t, "HIT", cachedDo(e, http.MethodGet, "/api/games", "8").Header().Get("X-Cache"))
}
