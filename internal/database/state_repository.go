package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
)

// ConservationStateRepo handles all conservation state database operations.
type ConservationStateRepo struct {
	db *sql.DB
}

func scanState(row rowScanner) (models.ConservationState, error) {
	var s models.ConservationState
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.RiskLevel)
	return s, err
}

// GetAllConservationStates returns every state ordered by id
func (r *ConservationStateRepo) GetAllConservationStates(ctx context.Context) ([]models.ConservationState, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, risk_level FROM conservation_states ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query conservation states: %w", err)
	}
	defer func() { _ = rows.Close() }()

	states := make([]models.ConservationState, 0)
	for rows.Next() {
		s, err := scanState(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conservation state: %w", err)
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

// GetConservationStateByID returns one state or an error wrapping remote.ErrNotFound
func (r *ConservationStateRepo) GetConservationStateByID(ctx context.Context, id int) (*models.ConservationState, error) {
	s, err := scanState(r.db.QueryRowContext(ctx,
		`SELECT id, name, description, risk_level FROM conservation_states WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("conservation state %d: %w", id, remote.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conservation state %d: %w", id, err)
	}
	return &s, nil
}

// CreateConservationState inserts s and returns its id
func (r *ConservationStateRepo) CreateConservationState(ctx context.Context, s models.ConservationState) (int, error) {
	op := remote.OpCreateConservationState
	if err := requireName(op, "state name", s.Name); err != nil {
		return 0, err
	}
	name := strings.TrimSpace(s.Name)

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO conservation_states (name, description, risk_level) VALUES (?, ?, ?)`,
		name, s.Description, s.RiskLevel,
	)
	if err != nil {
		return 0, constraintFault(op, err, fmt.Sprintf("a conservation state named %q already exists", name))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get conservation state ID after insert: %w", err)
	}
	return int(id), nil
}

// UpdateConservationState replaces the state with s.ID. It returns false when no such state exists.
func (r *ConservationStateRepo) UpdateConservationState(ctx context.Context, s models.ConservationState) (bool, error) {
	op := remote.OpUpdateConservationState
	if err := requireName(op, "state name", s.Name); err != nil {
		return false, err
	}
	name := strings.TrimSpace(s.Name)

	result, err := r.db.ExecContext(ctx,
		`UPDATE conservation_states SET name = ?, description = ?, risk_level = ? WHERE id = ?`,
		name, s.Description, s.RiskLevel, s.ID,
	)
	if err != nil {
		return false, constraintFault(op, err, fmt.Sprintf("a conservation state named %q already exists", name))
	}
	return affected(op, result)
}

// DeleteConservationState removes the state. States still referenced by a species cannot be deleted.
func (r *ConservationStateRepo) DeleteConservationState(ctx context.Context, id int) (bool, error) {
	op := remote.OpDeleteConservationState

	var inUse int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM species WHERE conservation_state_id = ?`, id).Scan(&inUse); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if inUse > 0 {
		return false, remote.NewFault(op, fmt.Sprintf("conservation state %d is used by %d species", id, inUse))
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM conservation_states WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return affected(op, result)
}
