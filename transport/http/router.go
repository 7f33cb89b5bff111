package http

import (
	"github.com/gin-gonic/gin"

	"github.com/kochabx/jwekit/bridge"
	"github.com/kochabx/jwekit/core/validator"
	httpmetrics "github.com/kochabx/jwekit/transport/http/metrics"
	"github.com/kochabx/jwekit/transport/http/middleware"
)

// RouterConfig 路由配置
type RouterConfig struct {
	Mode       string
	Cors       middleware.CorsConfig
	Prometheus *httpmetrics.Prometheus
	// SkipPaths 不记录访问日志和请求指标的路径
	SkipPaths []string
	// RateLimit 会话接口限流，Limiter 为空时不限流
	RateLimit middleware.RateLimitConfig
}

// NewRouter 创建挂载会话接口和公共中间件的 gin.Engine
// /health 和 /metrics 由 Server 按 Options 挂载
func NewRouter(b *bridge.Bridge, config RouterConfig) *gin.Engine {
	useValidator(validator.Validate)

	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	if config.Prometheus == nil {
		config.Prometheus = httpmetrics.Prom
	}
	if config.SkipPaths == nil {
		config.SkipPaths = middleware.DefaultLoggerConfig().SkipPaths
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.GinLoggerWithConfig(middleware.LoggerConfig{SkipPaths: config.SkipPaths}),
		middleware.Metrics(config.Prometheus, config.SkipPaths...),
	)
	if config.Cors.Enabled {
		r.Use(middleware.CorsWithConfig(config.Cors))
	}

	NewHandler(b).Register(r, middleware.RateLimit(config.RateLimit))
	return r
}
