package species

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
)

// DeleteCmd returns the species delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a species",
		Long: `Delete a species by ID (requires confirmation unless --force or --quiet).

The forest service keeps deleted species as inactive records.`,
		RunE: runDelete,
	}

	cmd.Flags().Int("id", 0, "Species ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	return cli.Run(cmd, func(c *cli.CLI, out *cli.OutputFormatter) error {
		id, err := cli.ParseID(cmd, "id")
		if err != nil {
			return out.Usage(err)
		}

		if !force && out.Human() {
			s, err := fetch(c, out, id)
			if err != nil {
				return err
			}
			if !cli.Confirm(cmd, fmt.Sprintf("Delete species #%d: '%s'?", id, s.CommonName)) {
				out.Printf("Cancelled\n")
				return nil
			}
		}

		res, err := cli.Await(c, func(cb manager.Callback[int]) {
			c.App.Manager.DeleteSpecies(id, cb)
		})
		if err != nil {
			return err
		}
		if err := cli.Report(out, res); err != nil {
			return err
		}

		if out.JSON {
			return out.Success(map[string]any{"id": id})
		}
		out.Printf("✓ %s\n", res.Message)
		return nil
	})
}
