package species

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

// CreateCmd returns the species create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new species",
		Long: `Register a new tree species in a zone.

Examples:
  # Minimal
  arbor species create --common-name "Ceibo" --zone 1 --state 2

  # With scientific name, printing only the new ID
  arbor species create --common-name "Ceibo" --scientific-name "Erythrina crista-galli" \
    --zone 1 --state 2 --quiet`,
		RunE: runCreate,
	}

	cmd.Flags().String("common-name", "", "Common name (required)")
	if err := cmd.MarkFlagRequired("common-name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("scientific-name", "", "Scientific name")
	cmd.Flags().Int("zone", 0, "Zone ID (required)")
	if err := cmd.MarkFlagRequired("zone"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().Int("state", 0, "Conservation state ID (required)")
	if err := cmd.MarkFlagRequired("state"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().Bool("inactive", false, "Register the species as inactive")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	commonName, _ := cmd.Flags().GetString("common-name")
	scientificName, _ := cmd.Flags().GetString("scientific-name")
	zoneID, _ := cmd.Flags().GetInt("zone")
	stateID, _ := cmd.Flags().GetInt("state")
	inactive, _ := cmd.Flags().GetBool("inactive")

	species := models.NewSpecies(commonName, scientificName, zoneID, stateID)
	species.Active = !inactive

	return cli.Run(cmd, func(c *cli.CLI, out *cli.OutputFormatter) error {
		res, err := cli.Await(c, func(cb manager.Callback[int]) {
			c.App.Manager.CreateSpecies(species, cb)
		})
		if err != nil {
			return err
		}
		if err := cli.Report(out, res); err != nil {
			return err
		}

		species.ID = res.Value
		if !out.Human() {
			return out.Success(species)
		}
		out.Printf("✓ %s\n", res.Message)
		return nil
	})
}
