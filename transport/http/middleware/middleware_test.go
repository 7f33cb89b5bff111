package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/jwekit/errors"
	klog "github.com/kochabx/jwekit/log"
	"github.com/kochabx/jwekit/transport/http/metrics"
	"github.com/kochabx/jwekit/transport/http/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log
	SetLogger(klog.NewWriter(&buf))
	t.Cleanup(func() { log = prev })
	return &buf
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "trace-42")
	w = serve(r, req)
	assert.Equal(t, "trace-42", w.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "bad id")
	w = serve(r, req)
	assert.NotEqual(t, "bad id", w.Header().Get(HeaderRequestID))
}

func TestGinLogger(t *testing.T) {
	buf := captureLogs(t)

	r := gin.New()
	r.Use(RequestID(), GinLogger())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/v1/session/decrypt", func(c *gin.Context) {
		response.GinJSONE(c, errors.Conflict("keyId does not match").WithReason("KEY_ID_MISMATCH"))
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Zero(t, buf.Len(), "skipped path logged")

	serve(r, httptest.NewRequest(http.MethodPost, "/v1/session/decrypt", strings.NewReader(`{"privateKey":"aa"}`)))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "/v1/session/decrypt", entry["uri"])
	assert.Equal(t, "KEY_ID_MISMATCH", entry["reason"])
	assert.NotEmpty(t, entry["request_id"])
	assert.NotContains(t, buf.String(), "privateKey")
}

func TestRecovery(t *testing.T) {
	buf := captureLogs(t)

	r := gin.New()
	r.Use(Recovery(RecoveryConfig{StackTrace: false}))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 500, resp.Code)
	assert.Equal(t, "PANIC", resp.Reason)
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestMetrics(t *testing.T) {
	p := metrics.New()

	r := gin.New()
	r.Use(Metrics(p, "/metrics"))
	r.POST("/v1/session/keypair", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodPost, "/v1/session/keypair", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	families, err := p.Registry().Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range families {
		if mf.GetName() == "jwekit_http_requests_total" {
			for _, m := range mf.GetMetric() {
				total += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, total)
	assert.Equal(t, 2, testutil.CollectAndCount(p.Registry(), "jwekit_http_requests_total"))
}

func TestCors(t *testing.T) {
	r := gin.New()
	r.Use(CorsWithConfig(CorsConfig{AllowOrigins: []string{"https://app.example"}, MaxAge: 60}))
	r.POST("/v1/session/encrypt", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/v1/session/encrypt", nil)
	req.Header.Set("Origin", "https://app.example")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "60", w.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodPost, "/v1/session/encrypt", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
