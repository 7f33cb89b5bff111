package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	klog "github.com/kochabx/jwekit/log"
)

var log = klog.G()

// SetLogger 设置中间件使用的日志记录器
func SetLogger(logger *klog.Logger) {
	if logger != nil {
		log = logger
	}
}

// skippedPath 判断请求路径是否命中前缀列表
func skippedPath(c *gin.Context, prefixes ...string) bool {
	path := c.Request.URL.Path
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/") {
			return true
		}
	}
	return false
}
