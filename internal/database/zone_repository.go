package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
)

const zoneColumns = `id, name, forest_type, area_ha, active, created_at, modified_at`

// ZoneRepo handles all zone-related database operations.
type ZoneRepo struct {
	db  *sql.DB
	now func() time.Time
}

func scanZone(row rowScanner) (models.Zone, error) {
	var (
		z                 models.Zone
		forestType        int
		created, modified sql.NullString
	)
	if err := row.Scan(&z.ID, &z.Name, &forestType, &z.AreaHectares, &z.Active, &created, &modified); err != nil {
		return models.Zone{}, err
	}
	z.ForestType = models.ForestType(forestType)
	z.CreatedAt = parseTime(created)
	z.ModifiedAt = parseTime(modified)
	return z, nil
}

// GetAllZones returns every zone ordered by id
func (r *ZoneRepo) GetAllZones(ctx context.Context) ([]models.Zone, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+zoneColumns+` FROM zones ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query zones: %w", err)
	}
	defer func() { _ = rows.Close() }()

	zones := make([]models.Zone, 0)
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// GetZoneByID returns one zone or an error wrapping remote.ErrNotFound
func (r *ZoneRepo) GetZoneByID(ctx context.Context, id int) (*models.Zone, error) {
	z, err := scanZone(r.db.QueryRowContext(ctx, `SELECT `+zoneColumns+` FROM zones WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("zone %d: %w", id, remote.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get zone %d: %w", id, err)
	}
	return &z, nil
}

func checkArea(op string, area float64) error {
	if !(area > 0) || math.IsInf(area, 1) {
		return remote.NewFault(op, "area must be a finite number greater than zero")
	}
	return nil
}

// CreateZone inserts z and returns its id
func (r *ZoneRepo) CreateZone(ctx context.Context, z models.Zone) (int, error) {
	op := remote.OpCreateZone
	if err := requireName(op, "zone name", z.Name); err != nil {
		return 0, err
	}
	if err := checkArea(op, z.AreaHectares); err != nil {
		return 0, err
	}
	name := strings.TrimSpace(z.Name)

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO zones (name, forest_type, area_ha, active, created_at) VALUES (?, ?, ?, ?, ?)`,
		name, int(z.ForestType), z.AreaHectares, z.Active, formatTime(r.now()),
	)
	if err != nil {
		return 0, constraintFault(op, err, fmt.Sprintf("a zone named %q already exists", name))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get zone ID after insert: %w", err)
	}
	return int(id), nil
}

// UpdateZone replaces the zone with z.ID. It returns false when no such zone exists.
func (r *ZoneRepo) UpdateZone(ctx context.Context, z models.Zone) (bool, error) {
	op := remote.OpUpdateZone
	if err := requireName(op, "zone name", z.Name); err != nil {
		return false, err
	}
	if err := checkArea(op, z.AreaHectares); err != nil {
		return false, err
	}
	name := strings.TrimSpace(z.Name)

	result, err := r.db.ExecContext(ctx,
		`UPDATE zones SET name = ?, forest_type = ?, area_ha = ?, active = ?, modified_at = ? WHERE id = ?`,
		name, int(z.ForestType), z.AreaHectares, z.Active, formatTime(r.now()), z.ID,
	)
	if err != nil {
		return false, constraintFault(op, err, fmt.Sprintf("a zone named %q already exists", name))
	}
	return affected(op, result)
}

// DeleteZone marks the zone inactive. It returns false when no such zone exists.
func (r *ZoneRepo) DeleteZone(ctx context.Context, id int) (bool, error) {
	op := remote.OpDeleteZone
	result, err := r.db.ExecContext(ctx,
		`UPDATE zones SET active = 0, modified_at = ? WHERE id = ?`, formatTime(r.now()), id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return affected(op, result)
}
