package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
)

const speciesColumns = `s.id, s.common_name, s.scientific_name, s.zone_id, COALESCE(z.name, ''),
	s.conservation_state_id, COALESCE(c.name, ''), s.active, s.created_at, s.modified_at`

const speciesFrom = `FROM species s
	LEFT JOIN zones z ON z.id = s.zone_id
	LEFT JOIN conservation_states c ON c.id = s.conservation_state_id`

// SpeciesRepo handles all species-related database operations.
type SpeciesRepo struct {
	db  *sql.DB
	now func() time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpecies(row rowScanner) (models.Species, error) {
	var (
		s                 models.Species
		created, modified sql.NullString
	)
	err := row.Scan(&s.ID, &s.CommonName, &s.ScientificName, &s.ZoneID, &s.ZoneName,
		&s.ConservationStateID, &s.ConservationStateName, &s.Active, &created, &modified)
	if err != nil {
		return models.Species{}, err
	}
	s.CreatedAt = parseTime(created)
	s.ModifiedAt = parseTime(modified)
	return s, nil
}

// GetAllSpecies returns every species, soft-deleted ones included, ordered by id
func (r *SpeciesRepo) GetAllSpecies(ctx context.Context) ([]models.Species, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+speciesColumns+` `+speciesFrom+` ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query species: %w", err)
	}
	defer func() { _ = rows.Close() }()

	species := make([]models.Species, 0)
	for rows.Next() {
		s, err := scanSpecies(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan species: %w", err)
		}
		species = append(species, s)
	}
	return species, rows.Err()
}

// GetSpeciesByID returns one species or an error wrapping remote.ErrNotFound
func (r *SpeciesRepo) GetSpeciesByID(ctx context.Context, id int) (*models.Species, error) {
	s, err := scanSpecies(r.db.QueryRowContext(ctx, `SELECT `+speciesColumns+` `+speciesFrom+` WHERE s.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("species %d: %w", id, remote.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get species %d: %w", id, err)
	}
	return &s, nil
}

// CreateSpecies inserts s and returns its id
func (r *SpeciesRepo) CreateSpecies(ctx context.Context, s models.Species) (int, error) {
	op := remote.OpCreateSpecies
	if err := requireName(op, "common name", s.CommonName); err != nil {
		return 0, err
	}
	name := strings.TrimSpace(s.CommonName)

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO species (common_name, scientific_name, zone_id, conservation_state_id, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, strings.TrimSpace(s.ScientificName), s.ZoneID, s.ConservationStateID, s.Active, formatTime(r.now()),
	)
	if err != nil {
		return 0, constraintFault(op, err, fmt.Sprintf("a species named %q already exists", name))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get species ID after insert: %w", err)
	}
	return int(id), nil
}

// UpdateSpecies replaces the species with s.ID. It returns false when no such species exists.
func (r *SpeciesRepo) UpdateSpecies(ctx context.Context, s models.Species) (bool, error) {
	op := remote.OpUpdateSpecies
	if err := requireName(op, "common name", s.CommonName); err != nil {
		return false, err
	}
	name := strings.TrimSpace(s.CommonName)

	result, err := r.db.ExecContext(ctx,
		`UPDATE species SET common_name = ?, scientific_name = ?, zone_id = ?, conservation_state_id = ?,
		 active = ?, modified_at = ? WHERE id = ?`,
		name, strings.TrimSpace(s.ScientificName), s.ZoneID, s.ConservationStateID, s.Active, formatTime(r.now()), s.ID,
	)
	if err != nil {
		return false, constraintFault(op, err, fmt.Sprintf("a species named %q already exists", name))
	}
	return affected(op, result)
}

// DeleteSpecies marks the species inactive. It returns false when no such species exists.
func (r *SpeciesRepo) DeleteSpecies(ctx context.Context, id int) (bool, error) {
	op := remote.OpDeleteSpecies
	result, err := r.db.ExecContext(ctx,
		`UPDATE species SET active = 0, modified_at = ? WHERE id = ?`, formatTime(r.now()), id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return affected(op, result)
}
