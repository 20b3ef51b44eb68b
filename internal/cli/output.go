package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/manager"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
	Out   io.Writer
	Err   io.Writer
}

// AddOutputFlags registers --json and --quiet on cmd
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// NewFormatter builds a formatter from cmd's output flags and writers
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}

func (f *OutputFormatter) stdout() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) stderr() io.Writer {
	if f.Err == nil {
		return os.Stderr
	}
	return f.Err
}

// Human reports whether plain text output is wanted
func (f *OutputFormatter) Human() bool {
	return !f.JSON && !f.Quiet
}

// Printf writes human-readable text. It is a no-op in JSON and quiet mode.
func (f *OutputFormatter) Printf(format string, args ...any) {
	if f.Human() {
		fmt.Fprintf(f.stdout(), format, args...)
	}
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			_, err := fmt.Fprintf(f.stdout(), "%d\n", idGetter.GetID())
			return err
		}
		return nil
	}

	if f.JSON {
		return f.encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	return f.prettyPrint(data)
}

// IDs prints one id per line. It is used by list commands in quiet mode.
func (f *OutputFormatter) IDs(ids []int) error {
	for _, id := range ids {
		if _, err := fmt.Fprintf(f.stdout(), "%d\n", id); err != nil {
			return err
		}
	}
	return nil
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return f.encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(f.stderr(), "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.stderr(), "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail prints an error and returns an ExitCodeError carrying code
func (f *OutputFormatter) Fail(exitCode int, code string, err error) error {
	if fmtErr := f.Error(code, err.Error()); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "Error formatting error message: %v\n", fmtErr)
	}
	return &ExitCodeError{Code: exitCode, Err: err}
}

// Usage reports a malformed flag value
func (f *OutputFormatter) Usage(err error) error {
	return f.Fail(ExitUsage, "USAGE_ERROR", err)
}

// NotFound reports an unknown id
func (f *OutputFormatter) NotFound(message string) error {
	return f.Fail(ExitNotFound, "NOT_FOUND", errors.New(message))
}

// Report prints the failure carried by result. It returns nil when result succeeded.
func Report[T any](f *OutputFormatter, result manager.Result[T]) error {
	if result.OK() {
		return nil
	}
	if fmtErr := f.Error(errorCode(result.Kind), result.Message); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "Error formatting error message: %v\n", fmtErr)
	}
	return &ExitCodeError{Code: CodeFor(result.Kind), Err: result.Err}
}

func (f *OutputFormatter) encode(v any) error {
	enc := json.NewEncoder(f.stdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	if s, ok := data.(fmt.Stringer); ok {
		_, err := fmt.Fprintln(f.stdout(), s.String())
		return err
	}
	_, err := fmt.Fprintf(f.stdout(), "%+v\n", data)
	return err
}

// PrintList outputs a collection: ids in quiet mode, the JSON envelope, or
// one line per item under a count header
func PrintList[T interface{ GetID() int }](f *OutputFormatter, items []T, noun string, line func(T) string) error {
	if f.Quiet {
		ids := make([]int, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.GetID())
		}
		return f.IDs(ids)
	}
	if f.JSON {
		if items == nil {
			items = []T{}
		}
		return f.Success(items)
	}

	if len(items) == 0 {
		f.Printf("No %s found\n", noun)
		return nil
	}
	f.Printf("Found %d %s:\n\n", len(items), noun)
	for _, item := range items {
		f.Printf("  %s\n", line(item))
	}
	return nil
}
