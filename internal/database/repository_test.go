package database

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
)

func TestMigrations_SeedConservationStates(t *testing.T) {
	repo := setupTestRepo(t)

	states, err := repo.GetAllConservationStates(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 5)
	assert.Equal(t, "Least Concern", states[0].Name)
	assert.Equal(t, "critical", states[4].RiskLevel)
}

func TestMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, runMigrations(context.Background(), db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM conservation_states").Scan(&count))
	assert.Equal(t, 5, count)
}

func TestInitDB_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "forest.db")
	db, err := InitDB(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	assert.FileExists(t, path)
}

func TestSpeciesCRUD(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	zoneID := createTestZone(t, repo, "Bosque Norte")

	id, err := repo.CreateSpecies(ctx, models.NewSpecies("  Pino Candelabro ", "Pinus pseudostrobus", zoneID, 1))
	require.NoError(t, err)
	assert.Positive(t, id)

	s, err := repo.GetSpeciesByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pino Candelabro", s.CommonName)
	assert.Equal(t, "Bosque Norte", s.ZoneName)
	assert.Equal(t, "Least Concern", s.ConservationStateName)
	assert.True(t, s.Active)
	assert.Equal(t, testNow, s.CreatedAt)
	assert.True(t, s.ModifiedAt.IsZero())

	s.ScientificName = "Pinus pseudostrobus var. apulcensis"
	s.ConservationStateID = 3
	ok, err := repo.UpdateSpecies(ctx, *s)
	require.NoError(t, err)
	assert.True(t, ok)

	updated, err := repo.GetSpeciesByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Vulnerable", updated.ConservationStateName)
	assert.Equal(t, testNow, updated.ModifiedAt)

	ok, err = repo.DeleteSpecies(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	deleted, err := repo.GetSpeciesByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted.Active, "delete is soft")

	all, err := repo.GetAllSpecies(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSpecies_BusinessRules(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	zoneID := createTestZone(t, repo, "Bosque Norte")

	_, err := repo.CreateSpecies(ctx, models.NewSpecies("", "", zoneID, 1))
	assert.True(t, remote.IsFault(err), "empty name")

	_, err = repo.CreateSpecies(ctx, models.NewSpecies("Ceiba", "", zoneID, 1))
	require.NoError(t, err)

	_, err = repo.CreateSpecies(ctx, models.NewSpecies("CEIBA", "", zoneID, 1))
	var fault *remote.ServiceFault
	require.ErrorAs(t, err, &fault, "duplicate common name")
	assert.Contains(t, fault.Message, "already exists")

	_, err = repo.CreateSpecies(ctx, models.NewSpecies("Roble", "", 999, 1))
	require.ErrorAs(t, err, &fault, "unknown zone")
	assert.Contains(t, fault.Message, "does not exist")
}

func TestSpecies_UnknownIDs(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetSpeciesByID(ctx, 42)
	assert.ErrorIs(t, err, remote.ErrNotFound)

	ok, err := repo.UpdateSpecies(ctx, models.Species{ID: 42, CommonName: "Nadie"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DeleteSpecies(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateZone_RejectsNonFiniteArea(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, area := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := repo.CreateZone(ctx, models.Zone{Name: "Delta", AreaHectares: area})
		assert.True(t, remote.IsFault(err), "area %v", area)
	}

	zones, err := repo.GetAllZones(ctx)
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestZoneCRUD(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateZone(ctx, models.Zone{Name: "Sin Area"})
	assert.True(t, remote.IsFault(err))

	id, err := repo.CreateZone(ctx, models.Zone{Name: "Manglar Sur", ForestType: models.ForestMangrove, AreaHectares: 45.5, Active: true})
	require.NoError(t, err)

	_, err = repo.CreateZone(ctx, models.Zone{Name: "manglar sur", AreaHectares: 1})
	assert.True(t, remote.IsFault(err), "duplicate zone name")

	z, err := repo.GetZoneByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.ForestMangrove, z.ForestType)
	assert.InDelta(t, 45.5, z.AreaHectares, 0.0001)

	z.AreaHectares = 50
	ok, err := repo.UpdateZone(ctx, *z)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DeleteZone(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	zones, err := repo.GetAllZones(ctx)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.False(t, zones[0].Active)
	assert.InDelta(t, 50, zones[0].AreaHectares, 0.0001)

	_, err = repo.GetZoneByID(ctx, 999)
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestConservationStateCRUD(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateConservationState(ctx, models.ConservationState{Name: "Extinct in the Wild", RiskLevel: "extreme"})
	require.NoError(t, err)

	ok, err := repo.UpdateConservationState(ctx, models.ConservationState{ID: id, Name: "Extinct in the Wild", Description: "EW"})
	require.NoError(t, err)
	assert.True(t, ok)

	s, err := repo.GetConservationStateByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "EW", s.Description)

	ok, err = repo.DeleteConservationState(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetConservationStateByID(ctx, id)
	assert.ErrorIs(t, err, remote.ErrNotFound)

	ok, err = repo.DeleteConservationState(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConservationState_InUseCannotBeDeleted(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	zoneID := createTestZone(t, repo, "Norte")
	_, err := repo.CreateSpecies(ctx, models.NewSpecies("Ceiba", "", zoneID, 2))
	require.NoError(t, err)

	_, err = repo.DeleteConservationState(ctx, 2)
	assert.True(t, remote.IsFault(err))
}

func TestPing(t *testing.T) {
	repo := setupTestRepo(t)
	for _, kind := range models.Kinds() {
		assert.NoError(t, repo.Ping(context.Background(), kind))
	}
}
