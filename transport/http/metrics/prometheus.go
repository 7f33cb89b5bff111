// Package metrics 维护 HTTP 服务的 Prometheus 注册表与请求指标
package metrics

import (
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Prom 进程级默认注册表
var Prom = New()

// Prometheus 包装独立的注册表和 HTTP 请求指标
type Prometheus struct {
	registry *prometheus.Registry

	once     sync.Once
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func New() *Prometheus {
	return &Prometheus{
		registry: prometheus.NewRegistry(),
	}
}

// WithGoCollectorRuntimeMetrics 注册 Go 运行时指标
func (p *Prometheus) WithGoCollectorRuntimeMetrics() error {
	return p.register(collectors.NewGoCollector(
		collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/.*")}),
	))
}

// WithBuildInfoCollector 注册构建信息指标
func (p *Prometheus) WithBuildInfoCollector() error {
	return p.register(collectors.NewBuildInfoCollector())
}

// register 忽略重复注册，同一注册表可被多个 Server 共享
func (p *Prometheus) register(c prometheus.Collector) error {
	if err := p.registry.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

func (p *Prometheus) initHTTP() {
	p.once.Do(func() {
		p.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jwekit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"})
		p.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jwekit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"})
		p.registry.MustRegister(p.requests, p.latency)
	})
}

// ObserveRequest 记录一次 HTTP 请求
func (p *Prometheus) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	p.initHTTP()
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
