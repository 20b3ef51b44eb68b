// Package state implements the conservation state subcommands
package state

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

// StateCmd returns the conservation state parent command
func StateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "state",
		Aliases: []string{"states"},
		Short:   "Manage conservation states",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func line(s models.ConservationState) string {
	out := fmt.Sprintf("[%d] %s", s.ID, s.Name)
	if s.RiskLevel != "" {
		out += fmt.Sprintf(" (%s)", s.RiskLevel)
	}
	if s.Description != "" {
		out += " - " + s.Description
	}
	return out
}

func fetch(c *cli.CLI, out *cli.OutputFormatter, id int) (*models.ConservationState, error) {
	res, err := cli.Await(c, func(cb manager.Callback[*models.ConservationState]) {
		c.App.Manager.ConservationStateByID(id, cb)
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
