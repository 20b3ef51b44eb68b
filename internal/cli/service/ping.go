// Package service implements commands that inspect the forest service itself
package service

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

// PingCmd returns the ping command
func PingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that every forest service endpoint answers",
		Long: `Probe the species, zone and conservation state endpoints.

The command fails only when none of them answers.`,
		RunE: runPing,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runPing(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(c *cli.CLI, out *cli.OutputFormatter) error {
		res, err := cli.Await(c, func(cb manager.Callback[manager.ConnectionReport]) {
			c.App.Manager.CheckConnection(cb)
		})
		if err != nil {
			return err
		}
		if err := cli.Report(out, res); err != nil {
			return err
		}

		if out.Quiet {
			return nil
		}
		if out.JSON {
			endpoints := make(map[string]string, len(res.Value))
			for kind, err := range res.Value {
				endpoints[string(kind)] = status(err)
			}
			return out.Success(map[string]any{
				"connected": res.Value.Connected(),
				"endpoints": endpoints,
			})
		}

		out.Printf("%s\n\n", res.Message)
		for _, kind := range models.Kinds() {
			err, ok := res.Value[kind]
			if !ok {
				continue
			}
			out.Printf("  %-20s %s\n", kind.Label(), status(err))
		}
		return nil
	})
}

func status(err error) string {
	if err == nil {
		return "ok"
	}
	return manager.Describe(err)
}
