// Package daemon serves the forest registry over SOAP, backed by any
// remote.Client. It is what `arbor serve` runs and what the integration
// tests talk to.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thenoetrevino/arbor/internal/metrics"
	"github.com/thenoetrevino/arbor/internal/remote"
)

// Service paths, matching the endpoints the client defaults to
const (
	SpeciesPath = "/TreeSpeciesCrudService"
	ZonesPath   = "/SistemaForestalFinal/ZoneCrudService"
)

// DefaultShutdownTimeout bounds how long in-flight requests may run on shutdown
const DefaultShutdownTimeout = 5 * time.Second

// Server exposes a backend over HTTP
type Server struct {
	listener        net.Listener
	http            *http.Server
	stats           *Stats
	logger          *slog.Logger
	shutdownTimeout time.Duration
	shutdownOnce    sync.Once
	shutdownErr     error
}

// Option configures a Server
type Option func(*options)

type options struct {
	logger          *slog.Logger
	registry        *prometheus.Registry
	shutdownTimeout time.Duration
}

// WithLogger sets the server logger
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegistry exposes an existing registry on /metrics instead of a private one
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithShutdownTimeout overrides DefaultShutdownTimeout
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) { o.shutdownTimeout = d }
}

// NewServer listens on addr and prepares the handlers. Port 0 picks a free port;
// use Addr to find it.
func NewServer(addr string, backend remote.Client, opts ...Option) (*Server, error) {
	if backend == nil {
		return nil, errors.New("daemon: backend is required")
	}

	o := options{
		logger:          slog.Default(),
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
		o.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := &Server{
		listener:        listener,
		stats:           NewStats(),
		logger:          o.logger,
		shutdownTimeout: o.shutdownTimeout,
	}

	soapHandler := newSOAPHandler(backend, s.stats, metrics.New(o.registry), o.logger)

	mux := http.NewServeMux()
	mux.Handle(SpeciesPath, soapHandler)
	mux.Handle(ZonesPath, soapHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", s.serveHealth)

	s.http = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Addr returns the address the server is listening on
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// URL returns the base URL for clients
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// Stats returns the live request statistics
func (s *Server) Stats() *Stats {
	return s.stats
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("forest service listening", "addr", s.Addr())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.http.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, shutting down")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve failed", "error", err)
			_ = s.Shutdown()
			return err
		}
	}

	return s.Shutdown()
}

// Shutdown stops accepting requests and waits for in-flight ones. Safe to call
// more than once.
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		err := s.http.Shutdown(ctx)
		if errors.Is(err, context.DeadlineExceeded) {
			err = s.http.Close()
		}
		// Covers a server that was never started.
		if cerr := s.listener.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
			err = cerr
		}
		s.shutdownErr = err

		snap := s.stats.Snapshot()
		s.logger.Info("forest service stopped",
			"requests", snap.RequestsTotal,
			"faults", snap.FaultsTotal,
			"uptime", snap.Uptime)
	})
	return s.shutdownErr
}

func (s *Server) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.stats.Snapshot()); err != nil {
		s.logger.Error("failed to encode health", "error", err)
	}
}
