package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/jwekit/core/rate"
	"github.com/kochabx/jwekit/errors"
	"github.com/kochabx/jwekit/transport/http/response"
)

// ReasonRateLimited 请求超过限流阈值
const ReasonRateLimited = "RATE_LIMITED"

// ErrRateLimited 限流时返回的错误
var ErrRateLimited = errors.New(http.StatusTooManyRequests, "too many requests").WithReason(ReasonRateLimited)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Limiter rate.Limiter
	// KeyFunc 限流维度，默认按客户端 IP
	KeyFunc func(c *gin.Context) string
	// FailClosed 限流器出错时拒绝请求，默认放行
	FailClosed bool
}

// RateLimit 按 KeyFunc 的结果限流，Limiter 为空时不做任何处理
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	if config.Limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	return func(c *gin.Context) {
		key := config.KeyFunc(c)
		ok, err := config.Limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Bool("fail_closed", config.FailClosed).Msg("rate limiter unavailable")
			ok = !config.FailClosed
		}
		if !ok {
			response.GinJSONE(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}
