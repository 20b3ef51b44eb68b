// Package app wires the configured backend, cache, worker pool and manager
// into one container shared by the TUI and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenoetrevino/arbor/internal/async"
	"github.com/thenoetrevino/arbor/internal/cache"
	"github.com/thenoetrevino/arbor/internal/config"
	"github.com/thenoetrevino/arbor/internal/database"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/metrics"
	"github.com/thenoetrevino/arbor/internal/remote"
	"github.com/thenoetrevino/arbor/internal/remote/soap"
)

// App holds the application services and their lifecycles
type App struct {
	Config   *config.Config
	Client   remote.Client
	Queue    *async.Queue
	Runner   *async.Runner
	Cache    *cache.Store
	Manager  *manager.Manager
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	logger *slog.Logger
	db     *sql.DB
}

// New builds the container for cfg. The caller owns Queue and must pump it
// on the goroutine that consumes results.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	o := appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	reg := prometheus.NewRegistry()
	a := &App{
		Config:   cfg,
		Queue:    async.NewQueue(async.DefaultDispatchBuffer),
		Registry: reg,
		Metrics:  metrics.New(reg),
		logger:   o.logger,
	}

	client := o.client
	if client == nil {
		var err error
		client, err = a.backend(ctx)
		if err != nil {
			return nil, err
		}
	}
	a.Client = client

	dispatcher := o.dispatcher
	if dispatcher == nil {
		dispatcher = a.Queue
	}
	a.Runner = async.NewRunner(dispatcher,
		async.WithWorkers(cfg.Workers),
		async.WithQueueSize(cfg.QueueSize),
		async.WithLogger(o.logger),
		async.WithMetrics(a.Metrics),
	)

	cacheOpts := []cache.Option{cache.WithLogger(o.logger), cache.WithMetrics(a.Metrics)}
	if o.clock != nil {
		cacheOpts = append(cacheOpts, cache.WithClock(o.clock))
	}
	a.Cache = cache.New(cfg.CacheTTL(), cacheOpts...)

	a.Manager = manager.New(client, a.Runner,
		manager.WithCache(a.Cache),
		manager.WithLogger(o.logger),
		manager.WithMetrics(a.Metrics),
	)

	o.logger.Info("app initialized",
		"backend", cfg.Backend,
		"workers", cfg.Workers,
		"cache_ttl", cfg.CacheTTL())
	return a, nil
}

func (a *App) backend(ctx context.Context) (remote.Client, error) {
	switch a.Config.Backend {
	case config.BackendLocal:
		db, err := database.InitDB(ctx, a.Config.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open local database: %w", err)
		}
		a.db = db
		return database.NewRepository(db), nil
	case config.BackendSOAP, "":
		return soap.New(a.Config.SOAPEndpoints(),
			soap.WithTimeout(a.Config.RequestTimeout()),
			soap.WithLogger(a.logger),
			soap.WithMetrics(a.Metrics),
		), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", a.Config.Backend)
	}
}

// Close stops the worker pool and releases the backend. Callbacks of tasks
// still running are executed on the calling goroutine while it waits.
func (a *App) Close(ctx context.Context) error {
	var result *multierror.Error

	done := make(chan struct{})
	closeErr := make(chan error, 1)
	go func() {
		closeErr <- a.Runner.Close(ctx)
		close(done)
	}()

	if err := a.Queue.RunUntil(ctx, done); err != nil {
		// Workers may still be handing over results after cancellation.
		_ = a.Queue.RunUntil(context.Background(), done)
	}
	if err := <-closeErr; err != nil {
		result = multierror.Append(result, fmt.Errorf("worker pool: %w", err))
	}
	a.Queue.Drain()

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("database: %w", err))
		}
	}
	return result.ErrorOrNil()
}
