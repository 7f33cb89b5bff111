package middleware

import (
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kochabx/jwekit/errors"
)

// LoggerConfig 访问日志配置
// 请求体包含私钥，不提供记录请求体的选项
type LoggerConfig struct {
	// HandlerEnabled 是否记录处理器名称
	HandlerEnabled bool
	// SkipPaths 跳过记录的路径列表
	SkipPaths []string
	// Filter 自定义过滤函数，返回 true 时跳过
	Filter func(c *gin.Context) bool
}

// DefaultLoggerConfig 默认日志配置
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		SkipPaths: []string{"/health", "/metrics"},
	}
}

// GinLogger 创建默认的访问日志中间件
func GinLogger() gin.HandlerFunc {
	return GinLoggerWithConfig(DefaultLoggerConfig())
}

// GinLoggerWithConfig 根据配置创建访问日志中间件
func GinLoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if shouldSkipLogging(c, config) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		var event *zerolog.Event
		if len(c.Errors) > 0 {
			event = log.Warn()
		} else {
			event = log.Info()
		}

		event = event.
			Int("status", c.Writer.Status()).
			Str("method", c.Request.Method).
			Str("uri", c.Request.URL.Path).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP())

		if rid := GetRequestID(c); rid != "" {
			event = event.Str("request_id", rid)
		}
		if config.HandlerEnabled {
			event = event.Str("handler", c.HandlerName())
		}

		// 业务错误只记录 reason 和 cause，响应中已经去掉了内部细节
		if last := c.Errors.Last(); last != nil {
			event = event.Str("reason", errors.Reason(last.Err)).Err(last.Err)
		}

		event.Send()
	}
}

func shouldSkipLogging(c *gin.Context, config LoggerConfig) bool {
	if config.Filter != nil {
		return config.Filter(c)
	}
	return slices.Contains(config.SkipPaths, c.Request.URL.Path)
}
