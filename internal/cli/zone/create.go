package zone

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

// CreateCmd returns the zone create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a zone",
		Long: `Create a forest zone.

Forest types: dry, humid tropical, montane, mangrove, other.

Examples:
  arbor zone create --name "Reserva Norte" --forest-type montane --area 1250.5
  arbor zone create --name "Delta" --forest-type mangrove --area 80 --quiet`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Zone name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("forest-type", models.ForestOther.String(), "Forest type")
	cmd.Flags().Float64("area", 0, "Area in hectares (required)")
	if err := cmd.MarkFlagRequired("area"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().Bool("inactive", false, "Create the zone as inactive")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	rawType, _ := cmd.Flags().GetString("forest-type")
	area, _ := cmd.Flags().GetFloat64("area")
	inactive, _ := cmd.Flags().GetBool("inactive")

	return cli.Run(cmd, func(c *cli.CLI, out *cli.OutputFormatter) error {
		forestType, err := cli.ParseForestType(rawType)
		if err != nil {
			return out.Fail(cli.ExitDataErr, "INVALID_FOREST_TYPE", err)
		}
		zone := models.Zone{Name: name, ForestType: forestType, AreaHectares: area, Active: !inactive}

		res, err := cli.Await(c, func(cb manager.Callback[int]) {
			c.App.Manager.CreateZone(zone, cb)
		})
		if err != nil {
			return err
		}
		if err := cli.Report(out, res); err != nil {
			return err
		}

		zone.ID = res.Value
		if !out.Human() {
			return out.Success(zone)
		}
		out.Printf("✓ %s\n", res.Message)
		return nil
	})
}
