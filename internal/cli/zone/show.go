package zone

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
)

// ShowCmd returns the zone show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one zone",
		RunE:  runShow,
	}

	cmd.Flags().Int("id", 0, "Zone ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(c *cli.CLI, out *cli.OutputFormatter) error {
		id, err := cli.ParseID(cmd, "id")
		if err != nil {
			return out.Usage(err)
		}

		z, err := fetch(c, out, id)
		if err != nil {
			return err
		}
		if !out.Human() {
			return out.Success(z)
		}

		status := "active"
		if !z.Active {
			status = "inactive"
		}
		out.Printf("Zone #%d: %s\n", z.ID, z.Name)
		out.Printf("  Forest type: %s\n", z.ForestType)
		out.Printf("  Area:        %.2f ha\n", z.AreaHectares)
		out.Printf("  Status:      %s\n", status)
		return nil
	})
}
