package async

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func closeRunner(t *testing.T, r *Runner) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, r.Close(ctx))
}

func TestGo_DeliversResultThroughDispatcher(t *testing.T) {
	q := NewQueue(4)
	r := NewRunner(q, WithWorkers(2))
	defer closeRunner(t, r)

	err := Go(r, "answer", func(ctx context.Context) (int, error) {
		return 42, nil
	}, func(v int, err error) {
		assert.NoError(t, err)
		assert.Equal(t, 42, v)
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	fn, ok := q.Next(ctx)
	require.True(t, ok, "completion was never dispatched")
	fn()
}

func TestGo_CallbackRunsOnPumpingGoroutine(t *testing.T) {
	q := NewQueue(0)
	r := NewRunner(q)
	defer closeRunner(t, r)

	var workerDone atomic.Bool
	done := make(chan struct{})
	var sawWorkerFinished bool

	require.NoError(t, Go(r, "flag", func(ctx context.Context) (string, error) {
		workerDone.Store(true)
		return "ok", nil
	}, func(v string, err error) {
		sawWorkerFinished = workerDone.Load()
		close(done)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, q.RunUntil(ctx, done))
	assert.True(t, sawWorkerFinished)
}

func TestGo_ErrorIsDelivered(t *testing.T) {
	boom := errors.New("boom")
	q := NewQueue(1)
	r := NewRunner(q)
	defer closeRunner(t, r)

	var got error
	done := make(chan struct{})
	require.NoError(t, Go(r, "fail", func(ctx context.Context) (int, error) {
		return 0, boom
	}, func(_ int, err error) {
		got = err
		close(done)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, q.RunUntil(ctx, done))
	assert.ErrorIs(t, got, boom)
}

func TestGo_PanicBecomesError(t *testing.T) {
	q := NewQueue(1)
	r := NewRunner(q, WithWorkers(1))
	defer closeRunner(t, r)

	var got error
	done := make(chan struct{})
	require.NoError(t, Go(r, "panic", func(ctx context.Context) (int, error) {
		panic("kaboom")
	}, func(_ int, err error) {
		got = err
		close(done)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, q.RunUntil(ctx, done))
	require.ErrorIs(t, got, ErrPanic)
	assert.Contains(t, got.Error(), "kaboom")

	// The worker survives the panic
	done2 := make(chan struct{})
	require.NoError(t, Go(r, "after", func(ctx context.Context) (int, error) {
		return 1, nil
	}, func(v int, err error) {
		assert.Equal(t, 1, v)
		close(done2)
	}))
	require.NoError(t, q.RunUntil(ctx, done2))
}

func TestSubmit_QueueFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	r := NewRunner(Inline, WithWorkers(1), WithQueueSize(1))

	// Occupies the only worker
	require.NoError(t, r.Submit("block", func(ctx context.Context) func() {
		close(started)
		<-release
		return nil
	}))
	<-started

	// Fills the only queue slot
	require.NoError(t, r.Submit("queued", func(ctx context.Context) func() { return nil }))

	err := r.Submit("rejected", func(ctx context.Context) func() { return nil })
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 1, r.Pending())

	close(release)
	closeRunner(t, r)
}

func TestSubmit_AfterClose(t *testing.T) {
	r := NewRunner(Inline)
	closeRunner(t, r)

	err := r.Submit("late", func(ctx context.Context) func() { return nil })
	assert.ErrorIs(t, err, ErrClosed)

	called := false
	err = Go(r, "late", func(ctx context.Context) (int, error) { return 0, nil }, func(int, error) { called = true })
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, called)

	// Idempotent
	assert.NoError(t, r.Close(context.Background()))
}

func TestClose_DrainsQueuedTasks(t *testing.T) {
	var mu sync.Mutex
	var ran []int
	r := NewRunner(Inline, WithWorkers(1), WithQueueSize(8))

	for i := range 5 {
		require.NoError(t, Go(r, "drain", func(ctx context.Context) (int, error) {
			time.Sleep(time.Millisecond)
			return i, nil
		}, func(v int, _ error) {
			mu.Lock()
			ran = append(ran, v)
			mu.Unlock()
		}))
	}

	closeRunner(t, r)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, ran)
}

func TestClose_TimeoutCancelsTaskContext(t *testing.T) {
	r := NewRunner(Inline, WithWorkers(1))
	started := make(chan struct{})
	var cancelled atomic.Bool

	require.NoError(t, r.Submit("slow", func(ctx context.Context) func() {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return nil
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := r.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, cancelled.Load())
}

func TestRunner_BoundedConcurrency(t *testing.T) {
	const workers = 3
	var active, peak atomic.Int32
	r := NewRunner(Inline, WithWorkers(workers), WithQueueSize(32))

	for range 20 {
		require.NoError(t, r.Submit("count", func(ctx context.Context) func() {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			active.Add(-1)
			return nil
		}))
	}

	closeRunner(t, r)
	assert.LessOrEqual(t, peak.Load(), int32(workers))
	assert.Positive(t, peak.Load())
}
