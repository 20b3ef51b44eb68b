package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/arbor/internal/manager"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: service faults, unexpected failures, or any error that
	// doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags or malformed flag values.
	ExitUsage = 2

	// ExitNotFound indicates a requested record was not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: dates or forest types that cannot be parsed.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: payloads rejected before any request was sent.
	ExitValidation = 5

	// ExitUnavailable indicates the forest service could not be reached.
	// Use for: timeouts, refused connections and a saturated worker pool.
	ExitUnavailable = 6
)

// ExitCodeError carries the process exit code for a failed command
type ExitCodeError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for err. Errors that carry no code
// map to ExitError.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ce *ExitCodeError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ExitError
}

// CodeFor maps a manager failure kind to an exit code
func CodeFor(kind manager.ErrorKind) int {
	switch kind {
	case manager.KindNone:
		return ExitSuccess
	case manager.KindValidation:
		return ExitValidation
	case manager.KindTransport, manager.KindUnavailable:
		return ExitUnavailable
	default:
		return ExitError
	}
}

// errorCode returns the machine-readable code printed for a failure kind
func errorCode(kind manager.ErrorKind) string {
	switch kind {
	case manager.KindValidation:
		return "VALIDATION_ERROR"
	case manager.KindTransport:
		return "TRANSPORT_ERROR"
	case manager.KindService:
		return "SERVICE_ERROR"
	case manager.KindUnavailable:
		return "UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
