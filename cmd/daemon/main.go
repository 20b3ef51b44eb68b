package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/arbor/internal/config"
	"github.com/thenoetrevino/arbor/internal/launcher"
	"github.com/thenoetrevino/arbor/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, level)
	slog.SetDefault(logger)

	if err := launcher.Serve(ctx, cfg, logger, launcher.ServeOptions{
		SampleData: os.Getenv("ARBOR_SAMPLE_DATA") != "",
	}); err != nil {
		logger.Error("service error", "error", err)
		os.Exit(1)
	}
}
