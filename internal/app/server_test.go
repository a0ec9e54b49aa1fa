package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bizcare-service/internal/config"
	"bizcare-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingLimiter allows limit hits per client id.
type countingLimiter struct {
	mu    sync.Mutex
	limit int64
	hits  map[string]int64
}

func (l *countingLimiter) Allow(_ context.Context, _, clientID string) (bool, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hits[clientID]++
	return l.hits[clientID] <= l.limit, 0, nil
}

func throttledEngine(t *testing.T, proxies []string) (*gin.Engine, *countingLimiter) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine, err := newEngine(config.AppConfig{TrustedProxies: proxies})
	require.NoError(t, err)

	limiter := &countingLimiter{limit: 1, hits: map[string]int64{}}
	engine.POST("/sign", middleware.RateLimit(limiter, "sign", 1, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine, limiter
}

func postFrom(engine http.Handler, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/sign", nil)
	req.RemoteAddr = remoteAddr
	req.Header.Set("X-Forwarded-For", forwardedFor)
	req.Header.Set("X-Real-IP", forwardedFor)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestEngine_IgnoresForwardedForByDefault(t *testing.T) {
	engine, limiter := throttledEngine(t, nil)

	var codes []int
	for i := 0; i < 5; i++ {
		codes = append(codes, postFrom(engine, "203.0.113.7:40000", fmt.Sprintf("198.51.100.%d", i)))
	}

	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
	assert.Equal(t, map[string]int64{"203.0.113.7": 5}, limiter.hits)
}

func TestEngine_TrustedProxyForwardsClientIP(t *testing.T) {
	engine, limiter := throttledEngine(t, []string{"10.0.0.0/8"})

	assert.Equal(t, http.StatusOK, postFrom(engine, "10.1.2.3:5000", "198.51.100.1"))
	assert.Equal(t, http.StatusOK, postFrom(engine, "10.1.2.3:5000", "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, postFrom(engine, "10.1.2.3:5000", "198.51.100.2"))

	// Not a trusted proxy, so the header is ignored.
	assert.Equal(t, http.StatusOK, postFrom(engine, "203.0.113.9:5000", "198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, postFrom(engine, "203.0.113.9:5000", "198.51.100.3"))

	assert.Len(t, limiter.hits, 3)
}

func TestNewServer_RejectsBadTrustedProxy(t *testing.T) {
	_, err := NewServer(config.AppConfig{TrustedProxies: []string{"not-an-ip"}}, zap.NewNop())
	assert.Error(t, err)
}

func TestServer_StartAfterShutdownDoesNotServe(t *testing.T) {
	srv, err := NewServer(config.AppConfig{
		HTTPAddr:    "127.0.0.1:0",
		DatabaseURL: "postgres://nobody@127.0.0.1:1/none?connect_timeout=1",
	}, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	assert.NoError(t, srv.Start(ctx))
	assert.NoError(t, srv.Shutdown(ctx))
}
