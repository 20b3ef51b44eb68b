// Package zone implements the zone subcommands
package zone

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

// ZoneCmd returns the zone parent command
func ZoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Manage forest zones",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func line(z models.Zone) string {
	s := fmt.Sprintf("[%d] %s - %s, %.1f ha", z.ID, z.Name, z.ForestType, z.AreaHectares)
	if !z.Active {
		s += " [inactive]"
	}
	return s
}

func fetch(c *cli.CLI, out *cli.OutputFormatter, id int) (*models.Zone, error) {
	res, err := cli.Await(c, func(cb manager.Callback[*models.Zone]) {
		c.App.Manager.ZoneByID(id, cb)
	})
	if err != nil {
		return nil, err
	}
	if err := cli.Report(out, res); err != nil {
		return nil, err
	}
	if res.Value == nil {
		return nil, out.NotFound(res.Message)
	}
	return res.Value, nil
}
