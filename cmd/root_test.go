package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"species", "zone", "state", "ping", "serve"})
}

func TestServeCmd_Flags(t *testing.T) {
	cmd := serveCmd()
	for _, name := range []string{"listen", "db", "sample-data"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
