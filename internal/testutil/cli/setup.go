// Package cli holds helpers for command tests. It lives apart from testutil
// because it imports the application container, which the manager tests
// cannot depend on.
package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/app"
	"github.com/thenoetrevino/arbor/internal/config"
	"github.com/thenoetrevino/arbor/internal/logging"
	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/testutil"
)

// SetupCLITest returns an application backed by an empty FakeRemote.
// The application is closed when the test ends.
func SetupCLITest(t *testing.T) (*testutil.FakeRemote, *app.App) {
	t.Helper()
	fake := testutil.NewFakeRemote()

	a, err := app.New(context.Background(), config.Default(),
		app.WithClient(fake),
		app.WithLogger(logging.Discard()),
	)
	require.NoError(t, err)
	closeOnCleanup(t, a)

	return fake, a
}

// SetupLocalCLITest returns an application backed by an in-memory database
func SetupLocalCLITest(t *testing.T) *app.App {
	t.Helper()
	cfg := config.Default()
	cfg.Backend = config.BackendLocal
	cfg.DatabasePath = ":memory:"

	a, err := app.New(context.Background(), cfg, app.WithLogger(logging.Discard()))
	require.NoError(t, err)
	closeOnCleanup(t, a)

	return a
}

func closeOnCleanup(t *testing.T, a *app.App) {
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Close(ctx); err != nil {
			t.Errorf("closing app: %v", err)
		}
	})
}

// SeedRegistry stores two zones, two states and three species in fake and
// returns the species ids. The second species is inactive.
func SeedRegistry(t *testing.T, fake *testutil.FakeRemote) (zones, states, species []int) {
	t.Helper()
	created := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

	zones = fake.SeedZones(
		models.Zone{Name: "Reserva Norte", ForestType: models.ForestMontane, AreaHectares: 1250, Active: true},
		models.Zone{Name: "Delta", ForestType: models.ForestMangrove, AreaHectares: 80, Active: true},
	)
	states = fake.SeedStates(
		models.ConservationState{Name: "Least Concern", RiskLevel: "low"},
		models.ConservationState{Name: "Endangered", RiskLevel: "high"},
	)
	species = fake.SeedSpecies(
		models.Species{CommonName: "Ceibo", ScientificName: "Erythrina crista-galli", ZoneID: zones[1], ConservationStateID: states[0], Active: true, CreatedAt: created},
		models.Species{CommonName: "Lapacho", ScientificName: "Handroanthus impetiginosus", ZoneID: zones[0], ConservationStateID: states[1], Active: false, CreatedAt: created.AddDate(0, 1, 0)},
		models.Species{CommonName: "Quebracho", ScientificName: "Schinopsis balansae", ZoneID: zones[0], ConservationStateID: states[0], Active: true, CreatedAt: created.AddDate(0, 2, 0)},
	)
	return zones, states, species
}
