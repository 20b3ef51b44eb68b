package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/app"
	arborcli "github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/testutil"
)

// ExecuteCLICommand executes a command against testApp and returns what it
// printed on stdout and stderr
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithInput(t, testApp, cmd, args, "")
}

// ExecuteCLICommandWithInput is ExecuteCLICommand with input fed to the command's stdin
func ExecuteCLICommandWithInput(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string, input string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	testutil.SetupCobraCommand(cmd, args)
	cmd.SetContext(arborcli.WithApp(context.Background(), testApp))

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(input))

	var executeErr error
	printed := testutil.CaptureOutput(t, func() {
		executeErr = cmd.Execute()
	})
	return printed + buf.String(), executeErr
}
