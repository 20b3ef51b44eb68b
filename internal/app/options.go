package app

import (
	"log/slog"
	"time"

	"github.com/thenoetrevino/arbor/internal/async"
	"github.com/thenoetrevino/arbor/internal/remote"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	client     remote.Client
	dispatcher async.Dispatcher
	logger     *slog.Logger
	clock      func() time.Time
}

// WithClient uses client instead of building the configured backend
func WithClient(client remote.Client) Option {
	return func(cfg *appConfig) {
		cfg.client = client
	}
}

// WithDispatcher delivers callbacks through d instead of the App's Queue.
// Queue stays allocated but unused.
func WithDispatcher(d async.Dispatcher) Option {
	return func(cfg *appConfig) {
		cfg.dispatcher = d
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithClock sets the cache clock
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.clock = now
	}
}
