package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/thenoetrevino/arbor/internal/remote"
)

const timeLayout = "2006-01-02 15:04:05"

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback transaction: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func formatTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timeLayout), Valid: true}
}

func parseTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// constraintFault converts SQLite constraint failures into service faults.
// Other errors are wrapped with context.
func constraintFault(op string, err error, duplicate string) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return remote.NewFault(op, duplicate)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return remote.NewFault(op, "referenced zone or conservation state does not exist")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func requireName(op, label, name string) error {
	if strings.TrimSpace(name) == "" {
		return remote.NewFault(op, label+" is required")
	}
	return nil
}

// affected reports whether the statement touched at least one row
func affected(op string, result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to read affected rows: %w", op, err)
	}
	return n > 0, nil
}
