package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(t *testing.T, max int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ping", RateLimit(rdb, max, time.Minute, KeyByIPAndPath()), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r, mr
}

func doPost(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	req.Header.Set("X-Forwarded-For", ip)
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	r, _ := newLimitedRouter(t, 3)

	for i := 0; i < 3; i++ {
		w := doPost(r, "1.2.3.4")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	r, _ := newLimitedRouter(t, 2)

	doPost(r, "1.2.3.4")
	doPost(r, "1.2.3.4")
	w := doPost(r, "1.2.3.4")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitBucketsPerIP(t *testing.T) {
	r, _ := newLimitedRouter(t, 1)

	assert.Equal(t, http.StatusOK, doPost(r, "1.2.3.4").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPost(r, "1.2.3.4").Code)

	// a different client is unaffected
	assert.Equal(t, http.StatusOK, doPost(r, "5.6.7.8").Code)
}

func TestRateLimitResetsAfterWindow(t *testing.T) {
	r, mr := newLimitedRouter(t, 1)

	assert.Equal(t, http.StatusOK, doPost(r, "1.2.3.4").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPost(r, "1.2.3.4").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, doPost(r, "1.2.3.4").Code)
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ping", RateLimit(nil, 1, time.Minute, KeyByIPAndPath()), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doPost(r, "1.2.3.4").Code)
	}
}
