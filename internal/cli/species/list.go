package species

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

// ListCmd returns the species list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all species",
		Long: `List every species registered with the forest service.

Results come from the local cache while it is fresh; pass --refresh to fetch
them again.`,
		RunE: runList,
	}

	cmd.Flags().Bool("refresh", false, "Bypass the cache")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	refresh, _ := cmd.Flags().GetBool("refresh")

	return cli.Run(cmd, func(c *cli.CLI, out *cli.OutputFormatter) error {
		res, err := cli.Await(c, func(cb manager.Callback[[]models.Species]) {
			c.App.Manager.LoadSpecies(refresh, cb)
		})
		if err != nil {
			return err
		}
		if err := cli.Report(out, res); err != nil {
			return err
		}
		return cli.PrintList(out, res.Value, "species", line)
	})
}
