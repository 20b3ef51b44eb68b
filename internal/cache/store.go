// Package cache implements the per-entity-type TTL cache that sits between the
// data manager and the remote service.
//
// An entry is fresh while now-FetchedAt < TTL. Lookups through GetOrFetch never
// serve an expired entry; Peek does, for callers that explicitly accept
// staleness. A failed fetch leaves any existing entry untouched.
//
// Concurrent fetches of the same kind are coalesced into one call, and each
// kind carries an invalidation generation: a fetch that started before an
// Invalidate cannot write its (possibly pre-mutation) result back.
package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/thenoetrevino/arbor/internal/metrics"
	"github.com/thenoetrevino/arbor/internal/models"
)

// DefaultTTL is the freshness window used when none is configured
const DefaultTTL = 300 * time.Second

// ErrPayloadType is returned when a cached payload does not hold the requested element type
var ErrPayloadType = errors.New("cached payload has unexpected type")

// Entry is one cached collection
type Entry struct {
	Kind      models.Kind
	Payload   any
	Size      int
	FetchedAt time.Time
}

// Status describes the freshness of one entry
type Status struct {
	Age       time.Duration
	Fresh     bool
	ExpiresIn time.Duration
	Size      int
}

// Store is safe for concurrent use
type Store struct {
	ttl     time.Duration
	now     func() time.Time
	items   *gocache.Cache
	flights singleflight.Group
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu          sync.Mutex // serializes writes against invalidation
	epoch       uint64
	generations map[models.Kind]uint64
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics records lookups and invalidations
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New creates a Store. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		ttl:         ttl,
		now:         time.Now,
		items:       gocache.New(gocache.NoExpiration, 0),
		logger:      slog.Default(),
		generations: make(map[models.Kind]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the freshness window
func (s *Store) TTL() time.Duration {
	return s.ttl
}

type generation struct {
	epoch uint64
	kind  uint64
}

func (s *Store) generation(kind models.Kind) generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generation{epoch: s.epoch, kind: s.generations[kind]}
}

func (s *Store) lookup(kind models.Kind) (Entry, bool) {
	v, ok := s.items.Get(string(kind))
	if !ok {
		return Entry{}, false
	}
	e, ok := v.(Entry)
	return e, ok
}

func (s *Store) fresh(e Entry) bool {
	return s.now().Sub(e.FetchedAt) < s.ttl
}

// put stores items unless kind was invalidated after gen was read
func (s *Store) put(kind models.Kind, gen generation, payload any, size int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen.epoch != s.epoch || gen.kind != s.generations[kind] {
		return false
	}
	s.items.Set(string(kind), Entry{
		Kind:      kind,
		Payload:   payload,
		Size:      size,
		FetchedAt: s.now(),
	}, gocache.NoExpiration)
	return true
}

// GetOrFetch returns the cached collection for kind when it is fresh and force
// is false. Otherwise it calls fetch and caches the result. On fetch failure
// the error is returned and the cache is left as it was.
func GetOrFetch[T any](s *Store, kind models.Kind, fetch func() ([]T, error), force bool) ([]T, error) {
	result := metrics.ResultMiss
	if e, ok := s.lookup(kind); ok {
		switch {
		case force:
			result = metrics.ResultForced
		case s.fresh(e):
			items, ok := e.Payload.([]T)
			if !ok {
				return nil, fmt.Errorf("%s: %w", kind, ErrPayloadType)
			}
			s.metrics.IncCacheLookup(string(kind), metrics.ResultHit)
			return slices.Clone(items), nil
		default:
			result = metrics.ResultStale
		}
	} else if force {
		result = metrics.ResultForced
	}
	s.metrics.IncCacheLookup(string(kind), result)

	gen := s.generation(kind)
	key := fmt.Sprintf("%s/%d/%d", kind, gen.epoch, gen.kind)
	v, err, shared := s.flights.Do(key, func() (any, error) {
		items, err := fetch()
		if err != nil {
			return nil, err
		}
		if !s.put(kind, gen, items, len(items)) {
			s.logger.Debug("discarding fetch result invalidated while in flight", "kind", kind)
		}
		return items, nil
	})
	if err != nil {
		if !shared {
			s.metrics.IncCacheFetchError(string(kind))
		}
		return nil, err
	}

	items, ok := v.([]T)
	if !ok {
		return nil, fmt.Errorf("%s: %w", kind, ErrPayloadType)
	}
	return slices.Clone(items), nil
}

// Cached returns a copy of the collection for kind only if it is fresh.
// A hit is recorded; a miss is not, since the caller is expected to follow
// up with GetOrFetch.
func Cached[T any](s *Store, kind models.Kind) ([]T, bool) {
	e, ok := s.lookup(kind)
	if !ok || !s.fresh(e) {
		return nil, false
	}
	items, ok := e.Payload.([]T)
	if !ok {
		return nil, false
	}
	s.metrics.IncCacheLookup(string(kind), metrics.ResultHit)
	return slices.Clone(items), true
}

// Peek returns the cached collection for kind even if it has expired.
// The returned Entry carries FetchedAt so the caller can judge staleness.
func Peek[T any](s *Store, kind models.Kind) ([]T, Entry, bool) {
	e, ok := s.lookup(kind)
	if !ok {
		return nil, Entry{}, false
	}
	items, ok := e.Payload.([]T)
	if !ok {
		return nil, Entry{}, false
	}
	return slices.Clone(items), e, true
}

// Fresh reports whether kind has a fresh entry
func (s *Store) Fresh(kind models.Kind) bool {
	e, ok := s.lookup(kind)
	return ok && s.fresh(e)
}

// Invalidate removes the entry for kind so the next GetOrFetch re-fetches.
// Fetches already in flight for kind will not repopulate the cache.
func (s *Store) Invalidate(kind models.Kind) {
	s.mu.Lock()
	s.generations[kind]++
	s.items.Delete(string(kind))
	s.mu.Unlock()

	s.metrics.IncCacheInvalidation(string(kind))
	s.logger.Debug("cache invalidated", "kind", kind)
}

// InvalidateAll clears every entry
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	s.epoch++
	s.items.Flush()
	s.mu.Unlock()

	for _, kind := range models.Kinds() {
		s.metrics.IncCacheInvalidation(string(kind))
	}
	s.logger.Debug("cache cleared")
}

// Status reports age and freshness of every cached entry
func (s *Store) Status() map[models.Kind]Status {
	now := s.now()
	out := make(map[models.Kind]Status)
	for _, item := range s.items.Items() {
		e, ok := item.Object.(Entry)
		if !ok {
			continue
		}
		age := now.Sub(e.FetchedAt)
		out[e.Kind] = Status{
			Age:       age,
			Fresh:     age < s.ttl,
			ExpiresIn: max(0, s.ttl-age),
			Size:      e.Size,
		}
	}
	return out
}
