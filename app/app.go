// Package app boots a vex application: config, logging, routes,
// middleware, metrics, and the server lifecycle.
package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/vexhttp/vex/config"
	"github.com/vexhttp/vex/core"
	"github.com/vexhttp/vex/core/dispatch"
	"github.com/vexhttp/vex/core/logging"
	"github.com/vexhttp/vex/core/metrics"
	"github.com/vexhttp/vex/core/middleware"
	"github.com/vexhttp/vex/core/router"
	"github.com/vexhttp/vex/session"
)

// App assembles an application around a configuration. Routes and
// middleware are registered before Run; everything is frozen once the
// server starts accepting.
type App struct {
	cfg     *config.Config
	lg      log.Logger
	builder *router.Builder
	global  []dispatch.Middleware
	values  map[string]any
}

// New creates an application from cfg. A nil cfg selects the defaults.
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	return &App{
		cfg:     cfg,
		lg:      logging.New(cfg.Logging.Level, cfg.Logging.File),
		builder: router.NewBuilder(cfg.Server.BaseURL),
		global:  []dispatch.Middleware{middleware.Trace()},
		values:  make(map[string]any),
	}
}

// Routes defines the application's routes on the ambient builder.
func (a *App) Routes(fn func(*router.Builder) *router.Builder) *App {
	a.builder = fn(a.builder)
	return a
}

// Use replaces the global middleware (request tracing by default).
func (a *App) Use(mw ...dispatch.Middleware) *App {
	a.global = mw
	return a
}

// Provide stores an externally-managed resource handle (a DB pool and
// the like) on the application context under key.
func (a *App) Provide(key string, value any) *App {
	a.values[key] = value
	return a
}

// Logger returns the application logger.
func (a *App) Logger() log.Logger {
	return a.lg
}

// Run builds the router, binds the server, and serves until SIGINT or
// SIGTERM.
func (a *App) Run() error {
	rt, err := a.builder.Build()
	if err != nil {
		return fmt.Errorf("could not build router: %w", err)
	}

	ctx := &dispatch.Context{
		Config:   a.cfg,
		Log:      a.lg,
		Sessions: session.NewMemoryStore(),
		Values:   a.values,
	}

	if a.cfg.Metrics.Enabled {
		metrics.Serve(a.cfg.Metrics.Port, a.lg)
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv, err := core.Bind(addr, rt, ctx, a.global,
		core.WithWorkers(a.cfg.Server.Workers),
		core.WithMaxConns(a.cfg.Server.MaxConnections),
		core.WithLogger(a.lg),
	)
	if err != nil {
		return fmt.Errorf("could not bind %s: %w", addr, err)
	}

	go a.awaitSignal(srv)

	level.Info(a.lg).Log("event", "server listening", "addr", srv.Addr())
	return srv.Serve()
}

func (a *App) awaitSignal(srv *core.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	level.Info(a.lg).Log("event", "shutting down", "signal", sig.String())
	srv.Close()
}
