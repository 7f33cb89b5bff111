package middleware

import (
	"fmt"
	"net"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/jwekit/errors"
	"github.com/kochabx/jwekit/transport/http/response"
)

// RecoveryConfig Recovery 中间件配置
type RecoveryConfig struct {
	StackTrace bool // 是否记录堆栈信息
}

// Recovery 捕获 panic，记录日志并返回统一的 500 响应
// 请求内容可能包含私钥，因此不转储请求
func Recovery(cfgs ...RecoveryConfig) gin.HandlerFunc {
	cfg := RecoveryConfig{StackTrace: true}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}

	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			if isBrokenPipe(r) {
				log.Warn().Str("error", fmt.Sprint(r)).Str("uri", c.Request.URL.Path).Msg("broken pipe")
				_ = c.Error(fmt.Errorf("%v", r))
				c.Abort()
				return
			}

			event := log.Error().
				Str("error", fmt.Sprint(r)).
				Str("method", c.Request.Method).
				Str("uri", c.Request.URL.Path).
				Str("request_id", GetRequestID(c))
			if cfg.StackTrace {
				event = event.Bytes("stack", debug.Stack())
			}
			event.Msg("panic recovered")

			response.GinJSONE(c, errors.Internal("internal error").WithReason("PANIC"))
		}()
		c.Next()
	}
}

// isBrokenPipe 检查是否为断开的连接错误
func isBrokenPipe(err any) bool {
	if ne, ok := err.(*net.OpError); ok {
		if se, ok := ne.Err.(*os.SyscallError); ok {
			errStr := strings.ToLower(se.Error())
			return strings.Contains(errStr, "broken pipe") ||
				strings.Contains(errStr, "connection reset by peer")
		}
	}
	return false
}
