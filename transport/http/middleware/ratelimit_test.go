package middleware

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/jwekit/core/rate"
	"github.com/kochabx/jwekit/transport/http/response"
)

func limitedRouter(config RateLimitConfig) *gin.Engine {
	r := gin.New()
	r.Use(RateLimit(config))
	r.POST("/v1/session/decrypt", func(c *gin.Context) { response.GinJSON(c, "ok") })
	return r
}

func post(r *gin.Engine, remote string) response.Response {
	req := httptest.NewRequest(http.MethodPost, "/v1/session/decrypt", nil)
	req.RemoteAddr = remote
	w := serve(r, req)

	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func TestRateLimit(t *testing.T) {
	r := limitedRouter(RateLimitConfig{Limiter: rate.NewLocal(2, time.Hour, 2)})

	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1:1001").Code)

	resp := post(r, "10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, ReasonRateLimited, resp.Reason)

	assert.Equal(t, http.StatusOK, post(r, "10.0.0.2:1000").Code, "other clients keep their budget")
}

func TestRateLimitLimiterError(t *testing.T) {
	buf := captureLogs(t)
	failing := rate.Func(func(context.Context, string) (bool, error) {
		return false, stderrors.New("redis down")
	})

	open := limitedRouter(RateLimitConfig{Limiter: failing})
	assert.Equal(t, http.StatusOK, post(open, "10.0.0.1:1").Code)
	assert.Contains(t, buf.String(), "rate limiter unavailable")

	closed := limitedRouter(RateLimitConfig{Limiter: failing, FailClosed: true})
	assert.Equal(t, http.StatusTooManyRequests, post(closed, "10.0.0.1:1").Code)
}

func TestRateLimitKeyFunc(t *testing.T) {
	var keys []string
	r := limitedRouter(RateLimitConfig{
		Limiter: rate.Func(func(_ context.Context, key string) (bool, error) {
			keys = append(keys, key)
			return true, nil
		}),
		KeyFunc: func(c *gin.Context) string { return c.GetHeader("X-Client") },
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/session/decrypt", nil)
	req.Header.Set("X-Client", "wallet-7")
	serve(r, req)
	require.Equal(t, []string{"wallet-7"}, keys)
}

func TestRateLimitDisabled(t *testing.T) {
	r := limitedRouter(RateLimitConfig{})
	for range 5 {
		assert.Equal(t, http.StatusOK, post(r, "10.0.0.1:1").Code)
	}
}
