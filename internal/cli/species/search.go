package species

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

// SearchCmd returns the species search subcommand
func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search species by name, zone, state, status or creation date",
		Long: `Filter the species collection. Every criterion is optional and the given
ones must all match. Name matching is case-insensitive and covers both the
common and the scientific name. Date bounds are inclusive.

Examples:
  arbor species search --name ceibo
  arbor species search --zone 1 --active
  arbor species search --after 2024-01-01 --before 2024-06-30 --json`,
		RunE: runSearch,
	}

	cmd.Flags().String("name", "", "Substring of the common or scientific name")
	cmd.Flags().Int("zone", 0, "Zone ID")
	cmd.Flags().Int("state", 0, "Conservation state ID")
	cmd.Flags().Bool("active", false, "Only active species")
	cmd.Flags().String("after", "", "Created on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("before", "", "Created on or before this date (YYYY-MM-DD)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func filterFromFlags(cmd *cobra.Command) (models.SearchFilter, error) {
	var filter models.SearchFilter
	var err error

	filter.NameQuery, _ = cmd.Flags().GetString("name")
	if filter.ZoneID, err = cli.OptionalInt(cmd, "zone"); err != nil {
		return filter, err
	}
	if filter.ConservationStateID, err = cli.OptionalInt(cmd, "state"); err != nil {
		return filter, err
	}
	if filter.ActiveOnly, err = cli.OptionalBool(cmd, "active"); err != nil {
		return filter, err
	}
	if filter.CreatedAfter, err = cli.ParseDate(cmd, "after", false); err != nil {
		return filter, err
	}
	if filter.CreatedBefore, err = cli.ParseDate(cmd, "before", true); err != nil {
		return filter, err
	}
	return filter, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(c *cli.CLI, out *cli.OutputFormatter) error {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return out.Fail(cli.ExitDataErr, "INVALID_FILTER", err)
		}

		res, err := cli.Await(c, func(cb manager.Callback[[]models.Species]) {
			c.App.Manager.SearchAsync(filter, cb)
		})
		if err != nil {
			return err
		}
		if err := cli.Report(out, res); err != nil {
			return err
		}
		return cli.PrintList(out, res.Value, "matching species", line)
	})
}
