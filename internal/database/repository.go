package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding and
// satisfies remote.Client, so it can stand in for the SOAP service.
type Repository struct {
	*SpeciesRepo
	*ZoneRepo
	*ConservationStateRepo

	db *sql.DB
}

var (
	_ remote.Client = (*Repository)(nil)
	_ remote.Pinger = (*Repository)(nil)
)

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return NewRepositoryWithClock(db, time.Now)
}

// NewRepositoryWithClock is NewRepository with a custom timestamp source
func NewRepositoryWithClock(db *sql.DB, now func() time.Time) *Repository {
	return &Repository{
		SpeciesRepo:           &SpeciesRepo{db: db, now: now},
		ZoneRepo:              &ZoneRepo{db: db, now: now},
		ConservationStateRepo: &ConservationStateRepo{db: db},
		db:                    db,
	}
}

// Ping checks that the table backing kind is readable
func (r *Repository) Ping(ctx context.Context, kind models.Kind) error {
	table := "species"
	switch kind {
	case models.KindZone:
		table = "zones"
	case models.KindConservationState:
		table = "conservation_states"
	}
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return &remote.TransportError{Op: "ping " + string(kind), Err: fmt.Errorf("database: %w", err)}
	}
	return nil
}
