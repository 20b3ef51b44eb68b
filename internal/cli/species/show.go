package species

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
)

// ShowCmd returns the species show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one species",
		Long: `Fetch a species by ID straight from the forest service.

Examples:
  arbor species show --id 12
  arbor species show --id 12 --json`,
		RunE: runShow,
	}

	cmd.Flags().Int("id", 0, "Species ID (required)")
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

		s, err := fetch(c, out, id)
		if err != nil {
			return err
		}
		if !out.Human() {
			return out.Success(s)
		}

		status := "active"
		if !s.Active {
			status = "inactive"
		}
		out.Printf("Species #%d: %s\n", s.ID, s.CommonName)
		out.Printf("  Scientific name:    %s\n", s.ScientificName)
		zone := s.ZoneName
		if zone == "" {
			zone = c.App.Manager.ZoneName(s.ZoneID)
		}
		state := s.ConservationStateName
		if state == "" {
			state = c.App.Manager.ConservationStateName(s.ConservationStateID)
		}
		out.Printf("  Zone:               %s (%d)\n", zone, s.ZoneID)
		out.Printf("  Conservation state: %s (%d)\n", state, s.ConservationStateID)
		out.Printf("  Status:             %s\n", status)
		if !s.CreatedAt.IsZero() {
			out.Printf("  Created:            %s\n", s.CreatedAt.Format(cli.DateLayout))
		}
		return nil
	})
}
