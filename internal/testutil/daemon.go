package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/thenoetrevino/arbor/internal/daemon"
	"github.com/thenoetrevino/arbor/internal/logging"
	"github.com/thenoetrevino/arbor/internal/remote"
	"github.com/thenoetrevino/arbor/internal/remote/soap"
)

// SetupTestDaemon starts a SOAP service for backend on a free local port.
// Shutdown is automatic via t.Cleanup().
func SetupTestDaemon(t *testing.T, backend remote.Client) *daemon.Server {
	t.Helper()

	server, err := daemon.NewServer("127.0.0.1:0", backend,
		daemon.WithLogger(logging.Discard()),
		daemon.WithShutdownTimeout(time.Second))
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	// Register cleanup before starting the server
	t.Cleanup(func() {
		if err := server.Shutdown(); err != nil {
			t.Logf("Warning: daemon shutdown error during cleanup: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		if err := server.Start(ctx); err != nil {
			t.Logf("Server error: %v", err)
		}
	}()
	return server
}

// Endpoints returns client endpoints for a test daemon
func Endpoints(server *daemon.Server) soap.Endpoints {
	return soap.Endpoints{
		Species:            server.URL() + daemon.SpeciesPath,
		Zones:              server.URL() + daemon.ZonesPath,
		ConservationStates: server.URL() + daemon.SpeciesPath,
	}
}

// WaitForCondition waits for a condition to become true within the timeout.
// The condition function is called repeatedly until it returns true or timeout.
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, description string) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Logf("Timeout waiting for condition: %s", description)
	return false
}
