package async

import "context"

// Dispatcher hands a completion callback to the goroutine that owns the UI
// state. Implementations must be safe to call from any goroutine.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to the Dispatcher interface
type DispatcherFunc func(fn func())

// Dispatch calls f(fn)
func (f DispatcherFunc) Dispatch(fn func()) {
	f(fn)
}

// Inline runs callbacks immediately on the calling worker goroutine.
// Only suitable when the callback does its own synchronization.
var Inline Dispatcher = DispatcherFunc(func(fn func()) { fn() })

// DefaultDispatchBuffer is the buffer used by NewQueue for non-positive sizes
const DefaultDispatchBuffer = 256

// Queue is a channel-backed Dispatcher. The owning goroutine pumps it with
// Run, RunUntil, Next or Drain, so every callback executes on that goroutine.
type Queue struct {
	ch chan func()
}

// NewQueue creates a Queue buffering up to size callbacks
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultDispatchBuffer
	}
	return &Queue{ch: make(chan func(), size)}
}

// Dispatch enqueues fn. It blocks the caller when the buffer is full, which
// only ever stalls a worker, never the pumping goroutine.
func (q *Queue) Dispatch(fn func()) {
	q.ch <- fn
}

// Len returns the number of pending callbacks
func (q *Queue) Len() int {
	return len(q.ch)
}

// Next waits for one callback. It returns false when ctx is done.
// The callback is returned, not run, so event loops can wrap it in a message.
func (q *Queue) Next(ctx context.Context) (func(), bool) {
	select {
	case fn := <-q.ch:
		return fn, true
	case <-ctx.Done():
		return nil, false
	}
}

// Run executes callbacks until ctx is done
func (q *Queue) Run(ctx context.Context) error {
	for {
		fn, ok := q.Next(ctx)
		if !ok {
			return ctx.Err()
		}
		fn()
	}
}

// RunUntil executes callbacks until done is closed or ctx is done.
// Callbacks already queued when done closes are not run.
func (q *Queue) RunUntil(ctx context.Context, done <-chan struct{}) error {
	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-q.ch:
			fn()
		}
	}
}

// Drain runs every callback currently queued without waiting and returns how many ran
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}
