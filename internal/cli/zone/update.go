package zone

import (
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
)

// UpdateCmd returns the zone update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a zone",
		Long:  "Update the fields of an existing zone. Only the flags given are changed.",
		RunE:  runUpdate,
	}

	cmd.Flags().Int("id", 0, "Zone ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("name", "", "New zone name")
	cmd.Flags().String("forest-type", "", "New forest type")
	cmd.Flags().Float64("area", 0, "New area in hectares")
	cmd.Flags().Bool("active", true, "Whether the zone is active")
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
		if !flags.Changed("name") && !flags.Changed("forest-type") && !flags.Changed("area") && !flags.Changed("active") {
			return out.Usage(errors.New("nothing to update: pass at least one field flag"))
		}

		current, err := fetch(c, out, id)
		if err != nil {
			return err
		}
		zone := *current
		if flags.Changed("name") {
			zone.Name, _ = flags.GetString("name")
		}
		if flags.Changed("forest-type") {
			raw, _ := flags.GetString("forest-type")
			if zone.ForestType, err = cli.ParseForestType(raw); err != nil {
				return out.Fail(cli.ExitDataErr, "INVALID_FOREST_TYPE", err)
			}
		}
		if flags.Changed("area") {
			zone.AreaHectares, _ = flags.GetFloat64("area")
		}
		if flags.Changed("active") {
			zone.Active, _ = flags.GetBool("active")
		}

		res, err := cli.Await(c, func(cb manager.Callback[int]) {
			c.App.Manager.UpdateZone(id, zone, cb)
		})
		if err != nil {
			return err
		}
		if err := cli.Report(out, res); err != nil {
			return err
		}

		if !out.Human() {
			return out.Success(zone)
		}
		out.Printf("✓ %s\n", res.Message)
		return nil
	})
}
