package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/app"
	"github.com/thenoetrevino/arbor/internal/config"
	"github.com/thenoetrevino/arbor/internal/logging"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
	"github.com/thenoetrevino/arbor/internal/testutil"
)

func setupCLI(t *testing.T) (*testutil.FakeRemote, *CLI) {
	t.Helper()
	fake := testutil.NewFakeRemote()
	a, err := app.New(context.Background(), config.Default(), app.WithClient(fake), app.WithLogger(logging.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, a.Close(ctx))
	})

	c, err := FromContext(WithApp(context.Background(), a))
	require.NoError(t, err)
	return fake, c
}

func TestFromContext_UsesInjectedApp(t *testing.T) {
	_, c := setupCLI(t)
	assert.False(t, c.owned)
	assert.NoError(t, c.Close())
	assert.NotNil(t, c.Context())
}

func TestAwait_DeliversQueuedResult(t *testing.T) {
	fake, c := setupCLI(t)
	fake.SeedZones(models.Zone{Name: "Norte", ForestType: models.ForestDry, AreaHectares: 1, Active: true})

	res, err := Await(c, func(cb manager.Callback[[]models.Zone]) {
		c.App.Manager.LoadZones(false, cb)
	})
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Len(t, res.Value, 1)
	assert.Equal(t, "Loaded 1 zone", res.Message)
}

func TestAwait_SynchronousFailure(t *testing.T) {
	fake, c := setupCLI(t)

	res, err := Await(c, func(cb manager.Callback[int]) {
		c.App.Manager.CreateZone(models.Zone{Name: ""}, cb)
	})
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, manager.KindValidation, res.Kind)
	assert.Equal(t, 0, fake.Calls(remote.OpCreateZone))
}

func TestAwait_ContextCancelled(t *testing.T) {
	fake, c := setupCLI(t)
	release := make(chan struct{})
	fake.OnCall(remote.OpGetAllZones, func(context.Context) { <-release })
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	c.ctx = ctx
	cancel()

	_, err := Await(c, func(cb manager.Callback[[]models.Zone]) {
		c.App.Manager.LoadZones(true, cb)
	})
	assert.ErrorIs(t, err, context.Canceled)
}
