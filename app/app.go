package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/searchktools/saaba/config"
	"github.com/searchktools/saaba/core"
	"github.com/searchktools/saaba/core/middleware"
	"github.com/searchktools/saaba/core/observability"
)

// App is the application instance
type App struct {
	cfg     *config.Config
	engine  *core.Engine
	logger  zerolog.Logger
	monitor *observability.Monitor
}

// New creates an application instance with an engine configured from cfg
func New(cfg *config.Config) *App {
	logger := NewLogger(cfg)

	engine := core.NewEngine()
	engine.SetLogger(logger)
	engine.SetTimeouts(
		time.Duration(cfg.ReadTimeout)*time.Second,
		time.Duration(cfg.WriteTimeout)*time.Second,
	)
	engine.SetMaxHeaderBytes(cfg.MaxHeaderBytes)
	engine.SetReusePort(cfg.ReusePort)
	monitor := observability.NewMonitor()
	monitor.SetEnabled(cfg.MonitorEnabled)
	engine.Use(
		middleware.Recovery(logger),
		middleware.Metrics(monitor),
		middleware.Logger(logger),
	)
	if cfg.CORSOrigin != "" {
		engine.Use(middleware.CORS(cfg.CORSOrigin))
	}
	if cfg.RateLimit > 0 {
		engine.Use(middleware.RateLimiter(cfg.RateLimit))
	}

	if cfg.StaticDir != "" {
		engine.Static("/static", cfg.StaticDir)
	}

	return &App{
		cfg:     cfg,
		engine:  engine,
		logger:  logger,
		monitor: monitor,
	}
}

// NewLogger builds the application logger: console output in development,
// JSON otherwise
func NewLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Str("env", cfg.Env).Logger()
}

// Engine returns the underlying engine for route registration
func (a *App) Engine() *core.Engine {
	return a.engine
}

// Logger returns the application logger
func (a *App) Logger() zerolog.Logger {
	return a.logger
}

// Monitor returns the request statistics collected by the engine
func (a *App) Monitor() *observability.Monitor {
	return a.monitor
}

// Run serves on the configured address until SIGINT or SIGTERM
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.RunContext(ctx)
}

// RunContext serves on the configured address until ctx is cancelled
func (a *App) RunContext(ctx context.Context) error {
	a.logger.Info().Str("addr", a.cfg.Addr()).Msg("starting server")

	if err := a.engine.RunContext(ctx, a.cfg.Addr()); err != nil {
		a.logger.Error().Err(err).Msg("server failed")
		return err
	}

	requests, errors, _ := a.monitor.Totals()
	a.logger.Info().Uint64("requests", requests).Uint64("errors", errors).Msg("server shut down")
	return nil
}
