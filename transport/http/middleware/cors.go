package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CorsConfig 跨域配置
type CorsConfig struct {
	Enabled      bool     `json:"enabled" mapstructure:"enabled"`
	AllowOrigins []string `json:"allow_origins" mapstructure:"allow_origins"`
	MaxAge       int      `json:"max_age" mapstructure:"max_age" default:"43200"`
}

var (
	corsMethods = []string{http.MethodPost, http.MethodGet, http.MethodOptions}
	corsHeaders = []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", HeaderRequestID}
)

// CorsWithConfig 只对白名单来源放行，"*" 表示任意来源
func CorsWithConfig(config CorsConfig) gin.HandlerFunc {
	anyOrigin := slices.Contains(config.AllowOrigins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || !anyOrigin && !slices.Contains(config.AllowOrigins, origin) {
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", strings.Join(corsMethods, ","))
		h.Set("Access-Control-Allow-Headers", strings.Join(corsHeaders, ","))
		h.Set("Access-Control-Expose-Headers", HeaderRequestID)
		h.Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
