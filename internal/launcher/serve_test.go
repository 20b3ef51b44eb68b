package launcher

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/config"
	"github.com/thenoetrevino/arbor/internal/logging"
)

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "arbor.db")
	cfg.Server.Listen = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- Serve(ctx, cfg, logging.Discard(), ServeOptions{SampleData: true}) }()

	// Let migrations finish so the cancel lands on the running server
	time.Sleep(300 * time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServe_BadAddress(t *testing.T) {
	cfg := config.Default()
	cfg.DatabasePath = ":memory:"
	cfg.Server.Listen = "not-an-address"

	err := Serve(context.Background(), cfg, logging.Discard(), ServeOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create server")
}
