package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/models"
)

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(context.Background(), ":memory:")
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var testNow = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepositoryWithClock(setupTestDB(t), func() time.Time { return testNow })
}

// createTestZone inserts a zone and returns its id
func createTestZone(t *testing.T, repo *Repository, name string) int {
	t.Helper()
	id, err := repo.CreateZone(context.Background(), models.Zone{
		Name: name, ForestType: models.ForestMontane, AreaHectares: 10, Active: true,
	})
	require.NoError(t, err)
	return id
}
