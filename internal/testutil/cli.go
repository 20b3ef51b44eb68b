package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

// CaptureOutput captures stdout during function execution
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()
	_ = w.Close()
	os.Stdout = oldStdout

	return <-outC
}

// ExecuteCommand runs a cobra command with args and returns what it wrote.
// Output sent through cmd.OutOrStdout is captured as well as os.Stdout.
func ExecuteCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	SetupCobraCommand(cmd, args)

	var buf bytes.Buffer
	cmd.SetOut(&buf)

	var executeErr error
	printed := CaptureOutput(t, func() {
		executeErr = cmd.Execute()
	})
	return printed + buf.String(), executeErr
}

// ParseJSON parses a JSON object printed by a command
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// ParseJSONList parses a JSON array printed by a command
func ParseJSONList(t *testing.T, output string) []map[string]any {
	t.Helper()

	var result []map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// SetupCobraCommand sets args and silences cobra's own error printing
func SetupCobraCommand(cmd *cobra.Command, args []string) {
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}
