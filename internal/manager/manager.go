// Package manager is the single entry point the UI layers use to read and
// mutate forest records. It serves collections from the cache, runs every
// remote call on the async runner and reports outcomes as Results.
//
// Mutations validate locally first; a validation failure is delivered
// synchronously and makes no remote call. A successful mutation invalidates
// only the cache entry of its own kind, before its callback is dispatched.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/arbor/internal/async"
	"github.com/thenoetrevino/arbor/internal/cache"
	"github.com/thenoetrevino/arbor/internal/metrics"
	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
)

// Manager orchestrates the remote client, the cache and the async runner.
// It is safe for concurrent use.
type Manager struct {
	client  remote.Client
	runner  *async.Runner
	cache   *cache.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Manager
type Option func(*Manager)

// WithCache injects the cache store
func WithCache(store *cache.Store) Option {
	return func(m *Manager) {
		m.cache = store
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

// New creates a Manager. Without WithCache it owns a store with the default TTL.
func New(client remote.Client, runner *async.Runner, opts ...Option) *Manager {
	m := &Manager{
		client: client,
		runner: runner,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cache == nil {
		m.cache = cache.New(cache.DefaultTTL, cache.WithLogger(m.logger), cache.WithMetrics(m.metrics))
	}
	return m
}

// Cache returns the store owned by the manager
func (m *Manager) Cache() *cache.Store {
	return m.cache
}

// AllSpecies returns every species, from the cache when fresh and force is false
func (m *Manager) AllSpecies(ctx context.Context, force bool) ([]models.Species, error) {
	return cache.GetOrFetch(m.cache, models.KindSpecies, func() ([]models.Species, error) {
		return m.client.GetAllSpecies(ctx)
	}, force)
}

// AllZones returns every zone, from the cache when fresh and force is false
func (m *Manager) AllZones(ctx context.Context, force bool) ([]models.Zone, error) {
	return cache.GetOrFetch(m.cache, models.KindZone, func() ([]models.Zone, error) {
		return m.client.GetAllZones(ctx)
	}, force)
}

// AllConservationStates returns every conservation state, from the cache when fresh and force is false
func (m *Manager) AllConservationStates(ctx context.Context, force bool) ([]models.ConservationState, error) {
	return cache.GetOrFetch(m.cache, models.KindConservationState, func() ([]models.ConservationState, error) {
		return m.client.GetAllConservationStates(ctx)
	}, force)
}

// LoadSpecies delivers every species to cb without blocking the caller
func (m *Manager) LoadSpecies(force bool, cb Callback[[]models.Species]) {
	loadAll(m, models.KindSpecies, m.client.GetAllSpecies, force, cb)
}

// LoadZones delivers every zone to cb without blocking the caller
func (m *Manager) LoadZones(force bool, cb Callback[[]models.Zone]) {
	loadAll(m, models.KindZone, m.client.GetAllZones, force, cb)
}

// LoadConservationStates delivers every conservation state to cb without blocking the caller
func (m *Manager) LoadConservationStates(force bool, cb Callback[[]models.ConservationState]) {
	loadAll(m, models.KindConservationState, m.client.GetAllConservationStates, force, cb)
}

// loadAll answers from a fresh cache entry synchronously, otherwise fetches on a worker
func loadAll[T any](m *Manager, kind models.Kind, fetch func(context.Context) ([]T, error), force bool, cb Callback[[]T]) {
	if !force {
		if items, ok := cache.Cached[T](m.cache, kind); ok {
			cb.deliver(succeed(items, loadedMessage(kind, len(items))))
			return
		}
	}

	failPrefix := "Error loading " + kind.Singular() + " list"
	err := async.Go(m.runner, "load "+string(kind), func(ctx context.Context) ([]T, error) {
		return cache.GetOrFetch(m.cache, kind, func() ([]T, error) { return fetch(ctx) }, force)
	}, func(items []T, err error) {
		if err != nil {
			m.logger.Warn("load failed", "kind", kind, "error", err)
			cb.deliver(fail[[]T](err, failPrefix))
			return
		}
		cb.deliver(succeed(items, loadedMessage(kind, len(items))))
	})
	if err != nil {
		cb.deliver(fail[[]T](err, failPrefix))
	}
}

func loadedMessage(kind models.Kind, n int) string {
	return fmt.Sprintf("Loaded %d %s", n, plural(kind, n))
}

func plural(kind models.Kind, n int) string {
	if n == 1 || kind == models.KindSpecies {
		return kind.Singular()
	}
	return kind.Singular() + "s"
}

// byID fetches one record on a worker. Not found is a success with a nil value.
func byID[T any](m *Manager, kind models.Kind, id int, fetch func(context.Context, int) (*T, error), cb Callback[*T]) {
	label := kind.Singular()
	if id <= 0 {
		cb.deliver(fail[*T](invalid("id", ErrInvalidID, "%s ID must be a positive number", capitalize(label)), ""))
		return
	}

	failPrefix := "Error fetching " + label
	err := async.Go(m.runner, "get "+string(kind), func(ctx context.Context) (*T, error) {
		v, err := fetch(ctx, id)
		if isNotFound(err) {
			return nil, nil
		}
		return v, err
	}, func(v *T, err error) {
		switch {
		case err != nil:
			m.logger.Warn("get by id failed", "kind", kind, "id", id, "error", err)
			cb.deliver(fail[*T](err, failPrefix))
		case v == nil:
			cb.deliver(succeed[*T](nil, fmt.Sprintf("%s with ID %d not found", capitalize(label), id)))
		default:
			cb.deliver(succeed(v, fmt.Sprintf("Found %s %d", label, id)))
		}
	})
	if err != nil {
		cb.deliver(fail[*T](err, failPrefix))
	}
}

// mutate runs work on a worker, invalidates kind once the service confirms
// and reports the affected id
func mutate(m *Manager, kind models.Kind, task string, work func(context.Context) (int, error), okMessage func(id int) string, failPrefix string, cb Callback[int]) {
	err := async.Go(m.runner, task, func(ctx context.Context) (int, error) {
		id, err := work(ctx)
		if err != nil {
			return 0, err
		}
		m.cache.Invalidate(kind)
		return id, nil
	}, func(id int, err error) {
		if err != nil {
			m.logger.Warn("mutation failed", "op", task, "kind", kind, "error", err)
			cb.deliver(fail[int](err, failPrefix))
			return
		}
		m.logger.Info("mutation applied", "op", task, "kind", kind, "id", id)
		cb.deliver(succeed(id, okMessage(id)))
	})
	if err != nil {
		cb.deliver(fail[int](err, failPrefix))
	}
}

// applied turns the service's boolean answer into an id or ErrNotApplied
func applied(id int, ok bool, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNotApplied
	}
	return id, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, remote.ErrNotFound)
}

// Invalidate drops the cached entry for kind
func (m *Manager) Invalidate(kind models.Kind) {
	m.cache.Invalidate(kind)
}

// RefreshAll drops every cached entry so the next reads re-fetch
func (m *Manager) RefreshAll() {
	m.cache.InvalidateAll()
	m.logger.Info("cache cleared")
}

// CacheStatus reports the age and freshness of every cached collection
func (m *Manager) CacheStatus() map[models.Kind]cache.Status {
	return m.cache.Status()
}
