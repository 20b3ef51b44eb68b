package state

import (
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
)

// UpdateCmd returns the conservation state update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a conservation state",
		RunE:  runUpdate,
	}

	cmd.Flags().Int("id", 0, "Conservation state ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("risk-level", "", "New risk level")
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
		if !flags.Changed("name") && !flags.Changed("description") && !flags.Changed("risk-level") {
			return out.Usage(errors.New("nothing to update: pass at least one field flag"))
		}

		current, err := fetch(c, out, id)
		if err != nil {
			return err
		}
		state := *current
		if flags.Changed("name") {
			state.Name, _ = flags.GetString("name")
		}
		if flags.Changed("description") {
			state.Description, _ = flags.GetString("description")
		}
		if flags.Changed("risk-level") {
			state.RiskLevel, _ = flags.GetString("risk-level")
		}

		res, err := cli.Await(c, func(cb manager.Callback[int]) {
			c.App.Manager.UpdateConservationState(id, state, cb)
		})
		if err != nil {
			return err
		}
		if err := cli.Report(out, res); err != nil {
			return err
		}

		if !out.Human() {
			return out.Success(state)
		}
		out.Printf("✓ %s\n", res.Message)
		return nil
	})
}
