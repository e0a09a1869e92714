package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	redispkg "prompthash.backend/pkg/redis"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	return srv
}

func withMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv := startMiniRedis(t)
	t.Cleanup(srv.Close)

	cli := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	redispkg.SetClient(cli)
	t.Cleanup(func() { _ = cli.Close() })
	return srv
}

func TestIdempotencyMiddleware_NoHeaderPassthrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestIdempotencyMiddleware_RedisErrorPassthrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	redispkg.SetClient(redisv9.NewClient(&redisv9.Options{Addr: "127.0.0.1:0"}))

	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(IdempotencyHeader, "idem-key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)
}

func TestIdempotencyMiddleware_ProcessingConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := withMiniRedis(t)

	srv.Set("idempotency:0xaaa:key-1", "processing")

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(WalletAddressKey, "0xaaa")
		c.Next()
	})
	r.Use(IdempotencyMiddleware())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(IdempotencyHeader, "key-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "ERR_IDEMPOTENCY_CONFLICT")
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	withMiniRedis(t)

	calls := 0
	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/x", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"txHash": "0xabc"})
	})

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(IdempotencyHeader, "key-2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, calls)

	// The retry replays the stored body without re-running the handler.
	req = httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(IdempotencyHeader, "key-2")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, calls, "handler must not run twice")
	require.Equal(t, "true", w.Header().Get("X-Idempotency-Hit"))
	require.Contains(t, w.Body.String(), "0xabc")
}

func TestIdempotencyMiddleware_FailureAllowsRetry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	withMiniRedis(t)

	calls := 0
	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/x", func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.Status(http.StatusBadGateway)
			return
		}
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(IdempotencyHeader, "key-3")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}
	require.Equal(t, 2, calls, "failed attempt must not be cached")
}
