package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/arbor/internal/async"
	"github.com/thenoetrevino/arbor/internal/remote"
)

// ErrNotApplied is reported when the service answers an update or delete with false
var ErrNotApplied = errors.New("service did not apply the change")

// Validation errors
var (
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrNameTooLong       = errors.New("name cannot exceed 255 characters")
	ErrInvalidID         = errors.New("invalid ID")
	ErrInvalidArea       = errors.New("area must be a positive finite number")
	ErrInvalidForestType = errors.New("invalid forest type")
	ErrUnknownZone       = errors.New("unknown zone")
	ErrUnknownState      = errors.New("unknown conservation state")
)

// ValidationError reports a payload rejected before any network call
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel describing the rule that failed
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Err: err}
}

// ErrorKind tags the failure carried by a Result
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindTransport
	KindService
	KindUnavailable
	KindInternal
)

// String returns the kind's label
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindService:
		return "service"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Problem is the user-facing explanation of an error
type Problem struct {
	Kind    ErrorKind
	Message string
	Hint    string
}

// Error implements the error interface.
func (p *Problem) Error() string {
	if p.Hint != "" {
		return p.Message + ". " + p.Hint
	}
	return p.Message
}

// Explain maps any error to a Problem. It returns nil for a nil error.
func Explain(err error) *Problem {
	if err == nil {
		return nil
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return &Problem{Kind: KindValidation, Message: ve.Message}
	}

	var te *remote.TransportError
	if errors.As(err, &te) {
		if te.Timeout() {
			return &Problem{
				Kind:    KindTransport,
				Message: "The forest service did not answer in time",
				Hint:    "Check that it is running, or raise request_timeout_seconds",
			}
		}
		return &Problem{
			Kind:    KindTransport,
			Message: "Cannot reach the forest service",
			Hint:    "Check the endpoints in your config and that the service is running",
		}
	}

	var sf *remote.ServiceFault
	if errors.As(err, &sf) {
		return &Problem{Kind: KindService, Message: "The service rejected the request: " + sf.Message}
	}

	switch {
	case errors.Is(err, ErrNotApplied):
		return &Problem{
			Kind:    KindService,
			Message: "The service did not apply the change",
			Hint:    "The record may no longer exist. Refresh and try again",
		}
	case errors.Is(err, async.ErrQueueFull):
		return &Problem{
			Kind:    KindUnavailable,
			Message: "Too many operations in progress",
			Hint:    "Wait for some to finish and try again",
		}
	case errors.Is(err, async.ErrClosed):
		return &Problem{Kind: KindUnavailable, Message: "The client is shutting down"}
	case errors.Is(err, context.DeadlineExceeded):
		return &Problem{Kind: KindTransport, Message: "The operation timed out"}
	case errors.Is(err, context.Canceled):
		return &Problem{Kind: KindUnavailable, Message: "The operation was cancelled"}
	}

	return &Problem{Kind: KindInternal, Message: err.Error()}
}

// Classify returns the kind of err, KindNone for nil
func Classify(err error) ErrorKind {
	if p := Explain(err); p != nil {
		return p.Kind
	}
	return KindNone
}

// Describe returns a human-readable message for err
func Describe(err error) string {
	if p := Explain(err); p != nil {
		return p.Error()
	}
	return ""
}
