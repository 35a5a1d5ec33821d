package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/gstinvoice/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

func newEngine(l *Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		if err := c.Errors.Last(); err != nil && err.Err == ErrRateLimited {
			c.AbortWithStatus(http.StatusTooManyRequests)
		}
	})
	r.Use(l.GinMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestGinMiddleware_BlocksAfterLimit(t *testing.T) {
	store := memory.NewStore()
	l := NewWithStore(store, limiter.Rate{Period: time.Minute, Limit: 2}, zap.NewNop())
	r := newEngine(l)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
		if i == 0 {
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestGinMiddleware_NilLimiterPassesThrough(t *testing.T) {
	var l *Limiter
	r := newEngine(l)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestNew_Disabled(t *testing.T) {
	l, err := New(nil, config.Config{}, zap.NewNop())

	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestNew_MemoryStore(t *testing.T) {
	l, err := New(nil, config.Config{RateLimit: "5-S"}, zap.NewNop())

	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, int64(5), l.limiter.Rate.Limit)
	assert.Equal(t, time.Second, l.limiter.Rate.Period)
}

func TestNew_InvalidRate(t *testing.T) {
	_, err := New(nil, config.Config{RateLimit: "lots"}, zap.NewNop())

	assert.Error(t, err)
}
