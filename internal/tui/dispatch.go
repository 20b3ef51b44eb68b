package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/arbor/internal/async"
)

// dispatchMsg carries one completion callback into Update
type dispatchMsg struct {
	fn func()
}

// reloadMsg asks Update to load every collection
type reloadMsg struct {
	force bool
}

// waitForDispatch blocks on the queue and hands the next callback to Update.
// Update re-arms it after running the callback, so only one is ever pending.
func waitForDispatch(ctx context.Context, queue *async.Queue) tea.Cmd {
	return func() tea.Msg {
		fn, ok := queue.Next(ctx)
		if !ok {
			return nil
		}
		return dispatchMsg{fn: fn}
	}
}
