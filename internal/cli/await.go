package cli

import (
	"github.com/thenoetrevino/arbor/internal/manager"
)

// Await starts an asynchronous manager operation and pumps the dispatch queue
// on the calling goroutine until its callback has run
func Await[T any](c *CLI, start func(cb manager.Callback[T])) (manager.Result[T], error) {
	done := make(chan struct{})
	var result manager.Result[T]
	start(func(r manager.Result[T]) {
		result = r
		close(done)
	})

	if err := c.App.Queue.RunUntil(c.ctx, done); err != nil {
		return result, err
	}
	return result, nil
}
