// Package async runs blocking work on a bounded pool of background workers and
// hands each result back through a Dispatcher, so the UI goroutine never
// blocks and is the only one that observes completions.
//
// Tasks cannot be cancelled once submitted. The context passed to work is
// cancelled only when Close gives up waiting for the pool to drain.
package async

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/arbor/internal/metrics"
)

// Default pool sizing
const (
	DefaultWorkers   = 4
	DefaultQueueSize = 64
)

var (
	// ErrQueueFull is returned by Submit when every queue slot is taken
	ErrQueueFull = errors.New("task queue is full")

	// ErrClosed is returned by Submit after Close
	ErrClosed = errors.New("task runner is closed")

	// ErrPanic wraps a panic raised by a task
	ErrPanic = errors.New("task panicked")
)

type job struct {
	name string
	run  func(ctx context.Context)
}

// Runner owns a fixed set of worker goroutines fed by a bounded queue
type Runner struct {
	dispatcher Dispatcher
	jobs       chan job
	group      errgroup.Group
	ctx        context.Context
	cancel     context.CancelFunc
	logger     *slog.Logger
	metrics    *metrics.Metrics
	workers    int
	queueSize  int

	mu     sync.RWMutex // guards closed and sends on jobs
	closed bool
}

// Option configures a Runner
type Option func(*Runner)

// WithWorkers sets the number of worker goroutines
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithQueueSize sets how many tasks may wait for a worker
func WithQueueSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.queueSize = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMetrics records task outcomes and queue depth
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// NewRunner starts the worker pool. Completions are delivered through d.
func NewRunner(d Dispatcher, opts ...Option) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		dispatcher: d,
		ctx:        ctx,
		cancel:     cancel,
		logger:     slog.Default(),
		workers:    DefaultWorkers,
		queueSize:  DefaultQueueSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.jobs = make(chan job, r.queueSize)

	for range r.workers {
		r.group.Go(func() error {
			r.work()
			return nil
		})
	}
	return r
}

func (r *Runner) work() {
	for j := range r.jobs {
		r.metrics.SetQueueDepth(len(r.jobs))
		start := time.Now()
		j.run(r.ctx)
		r.logger.Debug("task finished", "task", j.name, "duration", time.Since(start))
	}
}

func (r *Runner) submit(j job) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}
	select {
	case r.jobs <- j:
		r.metrics.SetQueueDepth(len(r.jobs))
		return nil
	default:
		r.logger.Warn("task rejected, queue full", "task", j.name, "queue_size", r.queueSize)
		return ErrQueueFull
	}
}

// Submit queues work without blocking. The function returned by work, if
// any, is handed to the dispatcher once work returns.
func (r *Runner) Submit(name string, work func(ctx context.Context) func()) error {
	return r.submit(job{name: name, run: func(ctx context.Context) {
		var done func()
		err := protect(func() { done = work(ctx) })
		r.metrics.ObserveTask(name, err)
		if err != nil {
			r.logger.Error("task panicked", "task", name, "error", err)
			return
		}
		if done != nil {
			r.dispatcher.Dispatch(done)
		}
	}})
}

// Go queues work without blocking and delivers its result to done through
// the runner's dispatcher. A panic in work is delivered as an error wrapping
// ErrPanic. If Go returns an error, done is never called.
func Go[T any](r *Runner, name string, work func(ctx context.Context) (T, error), done func(T, error)) error {
	return r.submit(job{name: name, run: func(ctx context.Context) {
		var (
			value T
			err   error
		)
		if perr := protect(func() { value, err = work(ctx) }); perr != nil {
			r.logger.Error("task panicked", "task", name, "error", perr)
			err = perr
		}
		r.metrics.ObserveTask(name, err)
		r.dispatcher.Dispatch(func() { done(value, err) })
	}})
}

func protect(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v\n%s", ErrPanic, p, debug.Stack())
		}
	}()
	fn()
	return nil
}

// Pending returns how many tasks are waiting for a worker
func (r *Runner) Pending() int {
	return len(r.jobs)
}

// Close stops accepting tasks and waits for queued and running tasks to
// finish. If ctx ends first, the task context is cancelled and ctx.Err() is
// returned. Close is idempotent.
func (r *Runner) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.jobs)
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = r.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		<-done
		return ctx.Err()
	}
}
