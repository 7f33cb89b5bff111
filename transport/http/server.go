package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kochabx/jwekit/log"
	"github.com/kochabx/jwekit/transport"
	httpmetrics "github.com/kochabx/jwekit/transport/http/metrics"
)

var _ transport.Server = (*Server)(nil)

const (
	defaultName              = "http"
	defaultReadHeaderTimeout = 10 * time.Second
)

// Meta is the metadata of the server.
type Meta struct {
	Name string
}

// Server serves a handler and, when the handler is a *gin.Engine, mounts
// the health and metrics endpoints on it.
type Server struct {
	meta    Meta
	options Options
	prom    *httpmetrics.Prometheus
	server  *http.Server

	mu       sync.Mutex
	listener net.Listener
}

type Option func(*Server)

func WithMeta(meta Meta) Option {
	return func(s *Server) { s.meta = meta }
}

// WithMetricsOptions configures the metrics endpoint. Enabled is used as
// given; empty paths get their defaults.
func WithMetricsOptions(metrics MetricsOption) Option {
	return func(s *Server) {
		if err := metrics.init(); err != nil {
			log.Error().Err(err).Msg("metrics options")
			return
		}
		s.options.Metrics = metrics
	}
}

func WithHealthOptions(health HealthOption) Option {
	return func(s *Server) {
		if err := health.init(); err != nil {
			log.Error().Err(err).Msg("health options")
			return
		}
		s.options.Health = health
	}
}

// WithPrometheus sets the registry served on the metrics endpoint.
// Defaults to the process wide httpmetrics.Prom.
func WithPrometheus(p *httpmetrics.Prometheus) Option {
	return func(s *Server) {
		if p != nil {
			s.prom = p
		}
	}
}

func NewServer(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		meta: Meta{Name: defaultName},
		prom: httpmetrics.Prom,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.meta.Name == "" {
		s.meta.Name = defaultName
	}

	if r, ok := handler.(*gin.Engine); ok {
		s.mountMetrics(r)
		s.mountHealth(r)
	}
	return s
}

// Run listens on the configured address and blocks until Shutdown.
func (s *Server) Run() error {
	if !transport.ValidateAddress(s.server.Addr) {
		return fmt.Errorf("%s server: invalid address %q", s.meta.Name, s.server.Addr)
	}

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	log.Info().Str("addr", ln.Addr().String()).Msgf("%s server listening", s.meta.Name)
	return s.server.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the bound address once Run is listening, the configured one before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) mountMetrics(r *gin.Engine) {
	m := s.options.Metrics
	if !m.Enabled {
		return
	}

	if m.EnabledGoCollector {
		if err := s.prom.WithGoCollectorRuntimeMetrics(); err != nil {
			log.Error().Err(err).Msg("register go collector")
		}
	}
	if m.EnabledBuildInfoCollector {
		if err := s.prom.WithBuildInfoCollector(); err != nil {
			log.Error().Err(err).Msg("register build info collector")
		}
	}

	r.GET(m.Path, gin.WrapH(promhttp.HandlerFor(s.prom.Registry(), promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})))
}

func (s *Server) mountHealth(r *gin.Engine) {
	if !s.options.Health.Enabled {
		return
	}
	r.GET(s.options.Health.Path, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
