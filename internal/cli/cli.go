// Package cli holds the plumbing shared by the arbor subcommands: opening the
// application, waiting for asynchronous results and formatting output.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/app"
	"github.com/thenoetrevino/arbor/internal/config"
	"github.com/thenoetrevino/arbor/internal/logging"
)

// closeTimeout bounds how long Close waits for in-flight tasks
const closeTimeout = 5 * time.Second

type contextKey string

const appKey contextKey = "arbor.app"

// WithApp returns a context carrying an already built application. Commands
// run with this context use it instead of loading the configuration, and
// leave closing it to the caller.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// CLI represents the CLI application context
type CLI struct {
	App *app.App

	ctx    context.Context
	owned  bool
	logOut io.Closer
}

// NewCLI loads the configuration and builds the application
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.Init(level)
	if err != nil {
		logger = logging.Discard()
		closer = nil
	}

	application, err := app.New(ctx, cfg, app.WithLogger(logger))
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return &CLI{App: application, ctx: ctx, owned: true, logOut: closer}, nil
}

// FromContext returns a CLI around the application stored by WithApp, or
// builds a new one when ctx carries none
func FromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a, ctx: ctx}, nil
	}
	return NewCLI(ctx)
}

// Context returns the context the CLI was opened with
func (c *CLI) Context() context.Context {
	return c.ctx
}

// Close shuts the application down when the CLI built it
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	var result *multierror.Error
	if err := c.App.Close(ctx); err != nil {
		result = multierror.Append(result, err)
	}
	if c.logOut != nil {
		if err := c.logOut.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Run opens the CLI for cmd, passes it to fn with a formatter built from the
// output flags and closes it afterwards
func Run(cmd *cobra.Command, fn func(c *CLI, out *OutputFormatter) error) error {
	out := NewFormatter(cmd)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := FromContext(ctx)
	if err != nil {
		if fmtErr := out.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return &ExitCodeError{Code: ExitError, Err: err}
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	return fn(c, out)
}
