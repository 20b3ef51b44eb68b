package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/thenoetrevino/arbor/internal/database"
	"github.com/thenoetrevino/arbor/internal/models"
)

// SetupTestDB creates an in-memory database with the full schema and the
// default conservation states
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestRepo returns a repository over a fresh in-memory database whose
// timestamps come from now
func SetupTestRepo(t *testing.T, now time.Time) *database.Repository {
	t.Helper()
	return database.NewRepositoryWithClock(SetupTestDB(t), func() time.Time { return now })
}

// CreateTestZone creates an active montane zone and returns its ID
func CreateTestZone(t *testing.T, repo *database.Repository, name string) int {
	t.Helper()
	id, err := repo.CreateZone(context.Background(), models.Zone{
		Name:         name,
		ForestType:   models.ForestMontane,
		AreaHectares: 50,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("Failed to create test zone: %v", err)
	}
	return id
}

// CreateTestSpecies creates an active species and returns its ID
func CreateTestSpecies(t *testing.T, repo *database.Repository, commonName, scientificName string, zoneID, stateID int) int {
	t.Helper()
	id, err := repo.CreateSpecies(context.Background(), models.NewSpecies(commonName, scientificName, zoneID, stateID))
	if err != nil {
		t.Fatalf("Failed to create test species: %v", err)
	}
	return id
}

// FirstStateID returns the ID of the first seeded conservation state
func FirstStateID(t *testing.T, repo *database.Repository) int {
	t.Helper()
	states, err := repo.GetAllConservationStates(context.Background())
	if err != nil || len(states) == 0 {
		t.Fatalf("No conservation states seeded: %v", err)
	}
	return states[0].ID
}
