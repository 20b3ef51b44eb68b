package database

import (
	"context"
	"database/sql"
)

// runMigrations creates the database schema and seeds default data if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conservation_states (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE COLLATE NOCASE,
			description TEXT NOT NULL DEFAULT '',
			risk_level TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS zones (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE COLLATE NOCASE,
			forest_type INTEGER NOT NULL DEFAULT 0,
			area_ha REAL NOT NULL,
			active BOOLEAN NOT NULL DEFAULT 1,
			created_at TEXT,
			modified_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS species (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			common_name TEXT NOT NULL UNIQUE COLLATE NOCASE,
			scientific_name TEXT NOT NULL DEFAULT '',
			zone_id INTEGER NOT NULL,
			conservation_state_id INTEGER NOT NULL,
			active BOOLEAN NOT NULL DEFAULT 1,
			created_at TEXT,
			modified_at TEXT,
			FOREIGN KEY (zone_id) REFERENCES zones(id),
			FOREIGN KEY (conservation_state_id) REFERENCES conservation_states(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_species_zone ON species(zone_id)`,
		`CREATE INDEX IF NOT EXISTS idx_species_state ON species(conservation_state_id)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return seedDefaultStates(ctx, db)
}

// seedDefaultStates inserts the IUCN categories if the table is empty
func seedDefaultStates(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM conservation_states").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		name, description, risk string
	}{
		{"Least Concern", "Widespread and abundant", "low"},
		{"Near Threatened", "Close to qualifying for a threatened category", "low"},
		{"Vulnerable", "High risk of endangerment in the wild", "medium"},
		{"Endangered", "Very high risk of extinction in the wild", "high"},
		{"Critically Endangered", "Extremely high risk of extinction in the wild", "critical"},
	}

	return withTx(ctx, db, func(tx *sql.Tx) error {
		for _, s := range defaults {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO conservation_states (name, description, risk_level) VALUES (?, ?, ?)",
				s.name, s.description, s.risk,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
