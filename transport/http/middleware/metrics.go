package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/jwekit/transport/http/metrics"
)

// Metrics 记录请求计数和耗时，按路由模板聚合，未匹配的路由记为 "unmatched"
func Metrics(p *metrics.Prometheus, skipPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skippedPath(c, skipPaths...) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		p.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
