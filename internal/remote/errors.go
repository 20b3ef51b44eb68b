package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNotFound is returned by GetXByID when the record does not exist
var ErrNotFound = errors.New("record not found")

// TransportError reports that the service could not be reached or did not
// answer in time. The request may or may not have been applied.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the transport failure was a timeout
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ServiceFault reports that the service received the request and rejected it,
// typically because a business rule was violated (duplicate name and so on).
type ServiceFault struct {
	Op      string
	Code    string
	Message string
}

// Error implements the error interface.
func (e *ServiceFault) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: service fault %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: service fault: %s", e.Op, e.Message)
}

// NewFault builds a ServiceFault for op
func NewFault(op, message string) *ServiceFault {
	return &ServiceFault{Op: op, Code: "Server", Message: message}
}

// IsTransport reports whether err is a *TransportError
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsFault reports whether err is a *ServiceFault
func IsFault(err error) bool {
	var sf *ServiceFault
	return errors.As(err, &sf)
}
