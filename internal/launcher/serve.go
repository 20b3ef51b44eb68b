package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/thenoetrevino/arbor/internal/config"
	"github.com/thenoetrevino/arbor/internal/daemon"
	"github.com/thenoetrevino/arbor/internal/database"
)

// ServeOptions tunes Serve
type ServeOptions struct {
	// SampleData seeds an empty database with a few zones and species
	SampleData bool
}

// Serve runs the reference forest service on cfg.Server.Listen, backed by
// the database at cfg.DatabasePath, until ctx is done
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ServeOptions) error {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	repo := database.NewRepository(db)
	if opts.SampleData {
		if err := database.SeedSampleData(ctx, repo, logger); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	server, err := daemon.NewServer(cfg.Server.Listen, repo,
		daemon.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("arbor service starting",
		"addr", server.Addr(),
		"species_path", daemon.SpeciesPath,
		"zones_path", daemon.ZonesPath,
		"pid", os.Getpid(),
	)

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("arbor service shut down gracefully")
	return nil
}
