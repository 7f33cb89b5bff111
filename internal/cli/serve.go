package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kochabx/jwekit/app"
	"github.com/kochabx/jwekit/bridge"
	"github.com/kochabx/jwekit/config"
	"github.com/kochabx/jwekit/core/rate"
	"github.com/kochabx/jwekit/internal/conf"
	"github.com/kochabx/jwekit/log"
	"github.com/kochabx/jwekit/store/redis"
	khttp "github.com/kochabx/jwekit/transport/http"
	httpmetrics "github.com/kochabx/jwekit/transport/http/metrics"
	"github.com/kochabx/jwekit/transport/http/middleware"
)

func newServeCommand(o *Options) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP session service",
		Long: `Serve the keypair, encrypt and decrypt operations over HTTP.

Settings come from --config (or jwekit.yaml in the search paths) with
JWEKIT_ environment overrides, e.g. JWEKIT_SERVER_ADDR=:9090.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), o, watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "apply log level changes when the config file changes")
	return cmd
}

func runServe(ctx context.Context, o *Options, watch bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var (
		cfg    *conf.Config
		loader *config.Config
	)
	cfg, loader, err := conf.Load(o.ConfigFile, func() {
		var level string
		loader.Read(func() { level = cfg.Log.Level })
		if l, err := log.ParseLevel(level); err == nil {
			log.SetGlobalLevel(l)
			log.Info().Str("level", level).Msg("log level updated")
		}
	})
	if err != nil {
		return err
	}

	logger, err := log.NewFromConfig(cfg.Log)
	if err != nil {
		return err
	}
	log.SetGlobalLogger(logger)
	middleware.SetLogger(logger)
	if o.Verbose {
		log.SetGlobalLevel(zerolog.DebugLevel)
	}

	prom := httpmetrics.New()
	metrics, err := bridge.NewMetrics(prom.Registry())
	if err != nil {
		return err
	}

	bridgeOpts, err := cfg.Bridge.Options()
	if err != nil {
		return err
	}
	b := bridge.New(append(bridgeOpts, bridge.WithMetrics(metrics), bridge.WithLogger(logger))...)

	var closers []app.Option
	limiter, err := newLimiter(ctx, cfg.Server.RateLimit, logger)
	if err != nil {
		return err
	}
	if c, ok := limiter.(*rateLimitClient); ok {
		closers = append(closers, app.WithClose("redis", c.client.Close, 0))
	}

	router := khttp.NewRouter(b, khttp.RouterConfig{
		Mode:       cfg.Server.Mode,
		Cors:       cfg.Server.Cors,
		Prometheus: prom,
		SkipPaths:  []string{cfg.Server.Health.Path, cfg.Server.Metrics.Path},
		RateLimit: middleware.RateLimitConfig{
			Limiter:    limiter,
			FailClosed: cfg.Server.RateLimit.FailClosed,
		},
	})
	server := khttp.NewServer(cfg.Server.Addr, router,
		khttp.WithMeta(khttp.Meta{Name: "jwekit"}),
		khttp.WithPrometheus(prom),
		khttp.WithMetricsOptions(cfg.Server.Metrics),
		khttp.WithHealthOptions(cfg.Server.Health),
	)

	if watch {
		if err := loader.Watch(); err != nil {
			return err
		}
	}

	opts := append([]app.Option{
		app.WithName("jwekit"),
		app.WithVersion(Version),
		app.WithContext(ctx),
		app.WithLogger(logger),
		app.WithServer(server),
		app.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		// registered first so it runs last
		app.WithClose("logger", func(context.Context) error { return logger.Close() }, 0),
	}, closers...)
	return app.New(opts...).Start()
}

// rateLimitClient keeps the redis client next to the limiter that uses it
type rateLimitClient struct {
	*rate.SlidingWindow
	client *redis.Client
}

func newLimiter(ctx context.Context, c conf.RateLimit, logger *log.Logger) (rate.Limiter, error) {
	if !c.Enabled {
		return nil, nil
	}

	switch c.Backend {
	case "redis":
		client, err := redis.New(ctx, c.Redis, redis.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return &rateLimitClient{
			SlidingWindow: rate.NewSlidingWindow(client.UniversalClient(), c.Prefix, c.Requests, c.Window),
			client:        client,
		}, nil
	default:
		return rate.NewLocal(c.Requests, c.Window, c.Burst), nil
	}
}
