package state

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
)

// ShowCmd returns the conservation state show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one conservation state",
		RunE:  runShow,
	}

	cmd.Flags().Int("id", 0, "Conservation state ID (required)")
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

		out.Printf("Conservation state #%d: %s\n", s.ID, s.Name)
		if s.RiskLevel != "" {
			out.Printf("  Risk level:  %s\n", s.RiskLevel)
		}
		if s.Description != "" {
			out.Printf("  Description: %s\n", s.Description)
		}
		return nil
	})
}
