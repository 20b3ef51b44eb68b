package species

import (
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
)

// UpdateCmd returns the species update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a species",
		Long: `Update the fields of an existing species. Only the flags given are changed.

Examples:
  arbor species update --id 12 --state 3
  arbor species update --id 12 --active=false`,
		RunE: runUpdate,
	}

	cmd.Flags().Int("id", 0, "Species ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("common-name", "", "New common name")
	cmd.Flags().String("scientific-name", "", "New scientific name")
	cmd.Flags().Int("zone", 0, "New zone ID")
	cmd.Flags().Int("state", 0, "New conservation state ID")
	cmd.Flags().Bool("active", true, "Whether the species is active")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(c *cli.CLI, out *cli.OutputFormatter) error {
		id, err := cli.ParseID(cmd, "id")
		if err != nil {
			return out.Usage(err)
		}
		flags := cmd.Flags()
		if !flags.Changed("common-name") && !flags.Changed("scientific-name") &&
			!flags.Changed("zone") && !flags.Changed("state") && !flags.Changed("active") {
			return out.Usage(errors.New("nothing to update: pass at least one field flag"))
		}

		current, err := fetch(c, out, id)
		if err != nil {
			return err
		}
		species := *current
		if flags.Changed("common-name") {
			species.CommonName, _ = flags.GetString("common-name")
		}
		if flags.Changed("scientific-name") {
			species.ScientificName, _ = flags.GetString("scientific-name")
		}
		if flags.Changed("zone") {
			species.ZoneID, _ = flags.GetInt("zone")
		}
		if flags.Changed("state") {
			species.ConservationStateID, _ = flags.GetInt("state")
		}
		if flags.Changed("active") {
			species.Active, _ = flags.GetBool("active")
		}

		res, err := cli.Await(c, func(cb manager.Callback[int]) {
			c.App.Manager.UpdateSpecies(id, species, cb)
		})
		if err != nil {
			return err
		}
		if err := cli.Report(out, res); err != nil {
			return err
		}

		if !out.Human() {
			return out.Success(species)
		}
		out.Printf("✓ %s\n", res.Message)
		return nil
	})
}
