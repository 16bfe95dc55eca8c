package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/magflow/internal/config"
	"github.com/specialistvlad/magflow/internal/ctxlog"
	"github.com/specialistvlad/magflow/internal/fetch"
	"github.com/specialistvlad/magflow/internal/tracing"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  config.Loader
	fetcher *fetch.Fetcher
	tracing *tracing.Provider
	runID   func() string
}

// Option customizes an App.
type Option func(*App)

// WithFetcher replaces the test data fetcher.
func WithFetcher(f *fetch.Fetcher) Option {
	return func(a *App) { a.fetcher = f }
}

// WithRunID fixes the run identifier written into the workflow.
func WithRunID(id string) Option {
	return func(a *App) { a.runID = func() string { return id } }
}

// NewApp is the constructor for the main application. Logs and the run
// summary go to outW. It panics if the tracing provider cannot be built,
// which only happens on a configuration NewConfig would have rejected.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)

	exporter := cfg.TraceExporter
	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:  exporter != "" && exporter != "none",
		Exporter: exporter,
		Writer:   outW,
	})
	if err != nil {
		panic(fmt.Errorf("failed to set up tracing: %w", err))
	}

	a := &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loader:  loader,
		fetcher: &fetch.Fetcher{},
		tracing: provider,
		runID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	logger.Debug("Application configured.", "tracing", provider.Enabled())
	return a
}

// Close flushes and stops tracing.
func (a *App) Close(ctx context.Context) error {
	return a.tracing.Shutdown(ctx)
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
