// Package species implements the species subcommands
package species

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

// SpeciesCmd returns the species parent command
func SpeciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "species",
		Short: "Manage tree species",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(SearchCmd())

	return cmd
}

func line(s models.Species) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s", s.ID, s.CommonName)
	if s.ScientificName != "" {
		fmt.Fprintf(&b, " (%s)", s.ScientificName)
	}
	if s.ZoneName != "" {
		fmt.Fprintf(&b, " - %s", s.ZoneName)
	}
	if s.ConservationStateName != "" {
		fmt.Fprintf(&b, ", %s", s.ConservationStateName)
	}
	if !s.Active {
		b.WriteString(" [inactive]")
	}
	return b.String()
}

// fetch looks up one species. A nil species with a nil error means the
// failure has already been reported.
func fetch(c *cli.CLI, out *cli.OutputFormatter, id int) (*models.Species, error) {
	res, err := cli.Await(c, func(cb manager.Callback[*models.Species]) {
		c.App.Manager.SpeciesByID(id, cb)
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
