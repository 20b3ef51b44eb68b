package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli/service"
	"github.com/thenoetrevino/arbor/internal/cli/species"
	"github.com/thenoetrevino/arbor/internal/cli/state"
	"github.com/thenoetrevino/arbor/internal/cli/zone"
	"github.com/thenoetrevino/arbor/internal/config"
	"github.com/thenoetrevino/arbor/internal/launcher"
	"github.com/thenoetrevino/arbor/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor - a terminal client for the forest species registry",
	Long: `Arbor browses and edits the tree species, zones and conservation states
held by a forest registry service.

Run without a subcommand to open the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launcher.Launch()
	},
}

func init() {
	rootCmd.AddCommand(species.SpeciesCmd())
	rootCmd.AddCommand(zone.ZoneCmd())
	rootCmd.AddCommand(state.StateCmd())
	rootCmd.AddCommand(service.PingCmd())
	rootCmd.AddCommand(serveCmd())
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference forest service",
		Long: `Serve the species, zone and conservation state SOAP endpoints from a local
database. Point another arbor at it with:

  ARBOR_SPECIES_URL=http://localhost:8282/TreeSpeciesCrudService \
  ARBOR_ZONES_URL=http://localhost:8282/SistemaForestalFinal/ZoneCrudService arbor`,
		RunE: runServe,
	}

	cmd.Flags().String("listen", "", "Address to listen on (default from config)")
	cmd.Flags().String("db", "", "Database path (default from config)")
	cmd.Flags().Bool("sample-data", false, "Seed an empty database with sample zones and species")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Server.Listen = listen
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DatabasePath = db
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sample, _ := cmd.Flags().GetBool("sample-data")
	return launcher.Serve(ctx, cfg, logging.New(cmd.ErrOrStderr(), level), launcher.ServeOptions{SampleData: sample})
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
