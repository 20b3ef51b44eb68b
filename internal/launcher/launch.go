// Package launcher starts the terminal interface.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/arbor/internal/app"
	"github.com/thenoetrevino/arbor/internal/config"
	"github.com/thenoetrevino/arbor/internal/logging"
	"github.com/thenoetrevino/arbor/internal/tui"
)

// shutdownTimeout bounds how long running tasks may take once the UI exits
const shutdownTimeout = 5 * time.Second

// Launch loads the configuration and runs the TUI until the user quits or
// the process is signalled
func Launch() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return LaunchWith(cfg)
}

// LaunchWith runs the TUI with an already loaded configuration
func LaunchWith(cfg *config.Config) error {
	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger, logFile, err := logging.Init(level)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application, err := app.New(ctx, cfg, app.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer closeCancel()
		if err := application.Close(closeCtx); err != nil {
			slog.Error("error during shutdown", "error", err)
		}
	}()

	model := tui.New(ctx, application.Manager, application.Queue, cfg)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	slog.Info("tui exited")
	return nil
}
