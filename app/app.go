package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kochabx/jwekit/log"
	"github.com/kochabx/jwekit/transport"
)

var (
	ErrAlreadyStarted = errors.New("application already started")
	ErrClosePanic     = errors.New("close function panicked")
)

// Application 管理服务和关闭函数的生命周期
type Application struct {
	name            string
	version         string
	ctx             context.Context
	cancel          context.CancelFunc
	shutdownTimeout time.Duration
	closeTimeout    time.Duration
	signals         []os.Signal
	servers         []transport.Server
	closeFuncs      []CloseFunc
	logger          *log.Logger
	mu              sync.RWMutex
	started         bool
}

// CloseFunc 关闭函数，Timeout 为 0 时使用应用的默认超时
type CloseFunc struct {
	Name    string
	Fn      func(context.Context) error
	Timeout time.Duration
}

type Option func(*Application)

// WithName 设置应用名称，用于启动日志
func WithName(name string) Option {
	return func(app *Application) {
		if name != "" {
			app.name = name
		}
	}
}

// WithVersion 设置版本号
func WithVersion(version string) Option {
	return func(app *Application) {
		app.version = version
	}
}

// WithContext 设置根上下文，取消后应用开始关闭
func WithContext(ctx context.Context) Option {
	return func(app *Application) {
		if ctx != nil {
			app.ctx, app.cancel = context.WithCancel(ctx)
		}
	}
}

// WithShutdownTimeout 设置服务关闭超时
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.shutdownTimeout = timeout
		}
	}
}

// WithCloseTimeout 设置关闭函数的默认超时
func WithCloseTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.closeTimeout = timeout
		}
	}
}

// WithSignals 设置触发关闭的信号
func WithSignals(signals ...os.Signal) Option {
	return func(app *Application) {
		if len(signals) > 0 {
			app.signals = slices.Clone(signals)
		}
	}
}

// WithServer 添加服务，nil 会被忽略
func WithServer(servers ...transport.Server) Option {
	return func(app *Application) {
		for _, server := range servers {
			if server != nil {
				app.servers = append(app.servers, server)
			}
		}
	}
}

// WithClose 添加关闭函数，按注册的逆序执行
func WithClose(name string, fn func(context.Context) error, timeout time.Duration) Option {
	return func(app *Application) {
		if fn == nil {
			app.logger.Warn().Str("name", name).Msg("nil close function ignored")
			return
		}
		app.closeFuncs = append(app.closeFuncs, CloseFunc{Name: name, Fn: fn, Timeout: timeout})
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger *log.Logger) Option {
	return func(app *Application) {
		if logger != nil {
			app.logger = logger
		}
	}
}

// New 创建应用
func New(opts ...Option) *Application {
	app := &Application{
		name:            "jwekit",
		shutdownTimeout: 30 * time.Second,
		closeTimeout:    10 * time.Second,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT},
		logger:          log.G(),
	}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// AddServer 在启动前添加服务
func (app *Application) AddServer(server transport.Server) error {
	if server == nil {
		return errors.New("server cannot be nil")
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if app.started {
		return ErrAlreadyStarted
	}
	app.servers = append(app.servers, server)
	return nil
}

// RegisterClose 添加关闭函数，启动后也可以调用
func (app *Application) RegisterClose(name string, fn func(context.Context) error, timeout time.Duration) error {
	if fn == nil {
		return errors.New("close function cannot be nil")
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	app.closeFuncs = append(app.closeFuncs, CloseFunc{Name: name, Fn: fn, Timeout: timeout})
	return nil
}

// Start 启动所有服务并阻塞，直到收到信号、上下文取消或某个服务退出
// 任一服务返回错误时其余服务随之关闭，关闭函数总会执行
func (app *Application) Start() error {
	app.mu.Lock()
	if app.started {
		app.mu.Unlock()
		return ErrAlreadyStarted
	}
	app.started = true
	servers := slices.Clone(app.servers)
	app.mu.Unlock()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, app.signals...)
	defer signal.Stop(sigCh)

	app.logger.Info().
		Str("name", app.name).
		Str("version", app.version).
		Int("servers", len(servers)).
		Msg("application starting")

	eg, ctx := errgroup.WithContext(app.ctx)
	for _, server := range servers {
		eg.Go(func() error {
			if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	eg.Go(func() error {
		select {
		case sig := <-sigCh:
			app.logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
			app.cancel()
		case <-ctx.Done():
		}
		return nil
	})

	err := eg.Wait()
	app.runCloseTasks()

	if err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Error().Err(err).Msg("application stopped with error")
		return err
	}
	app.logger.Info().Str("name", app.name).Msg("application stopped")
	return nil
}

// Stop 触发优雅关闭
func (app *Application) Stop() {
	app.cancel()
}

// runCloseTasks 逆序执行关闭函数，单个失败不影响后续
func (app *Application) runCloseTasks() {
	app.mu.RLock()
	closeFuncs := slices.Clone(app.closeFuncs)
	app.mu.RUnlock()

	for _, close := range slices.Backward(closeFuncs) {
		_ = app.runCloseTask(close)
	}
}

func (app *Application) runCloseTask(close CloseFunc) error {
	timeout := close.Timeout
	if timeout <= 0 {
		timeout = app.closeTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				app.logger.Error().Interface("panic", r).Str("close", close.Name).Msg("close function panicked")
				done <- ErrClosePanic
			}
		}()
		done <- close.Fn(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			app.logger.Error().Err(err).Str("close", close.Name).Msg("close function failed")
		}
		return err
	case <-ctx.Done():
		app.logger.Warn().Str("close", close.Name).Msg("close function timed out")
		return ctx.Err()
	}
}

// Info 返回应用状态
func (app *Application) Info() Info {
	app.mu.RLock()
	defer app.mu.RUnlock()

	return Info{
		Name:        app.name,
		Version:     app.version,
		Started:     app.started,
		ServerCount: len(app.servers),
		CloseCount:  len(app.closeFuncs),
	}
}

// Info 应用状态
type Info struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Started     bool   `json:"started"`
	ServerCount int    `json:"server_count"`
	CloseCount  int    `json:"close_count"`
}
