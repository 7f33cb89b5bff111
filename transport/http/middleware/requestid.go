package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kochabx/jwekit/core/util/id"
)

const (
	// HeaderRequestID 请求 ID 头
	HeaderRequestID = "X-Request-Id"

	requestIDKey = "request_id"
	maxIDLength  = 128
)

// RequestID 为每个请求分配 ID，沿用调用方传入的合法值
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" || len(rid) > maxIDLength || !printable(rid) {
			rid = id.RequestID()
		}

		c.Set(requestIDKey, rid)
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}

// GetRequestID 获取当前请求 ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func printable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
