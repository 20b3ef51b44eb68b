package state

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

// CreateCmd returns the conservation state create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a conservation state",
		Long: `Create a conservation state.

Examples:
  arbor state create --name "Vulnerable" --risk-level high \
    --description "Facing a high risk of extinction in the wild"`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "State name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("risk-level", "", "Risk level label")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	riskLevel, _ := cmd.Flags().GetString("risk-level")
	state := models.ConservationState{Name: name, Description: description, RiskLevel: riskLevel}

	return cli.Run(cmd, func(c *cli.CLI, out *cli.OutputFormatter) error {
		res, err := cli.Await(c, func(cb manager.Callback[int]) {
			c.App.Manager.CreateConservationState(state, cb)
		})
		if err != nil {
			return err
		}
		if err := cli.Report(out, res); err != nil {
			return err
		}

		state.ID = res.Value
		if !out.Human() {
			return out.Success(state)
		}
		out.Printf("✓ %s\n", res.Message)
		return nil
	})
}
