// Package sqlite implements the repository interfaces on an embedded
// SQLite database via modernc.org/sqlite (pure Go, no CGo).
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements all three repository
// interfaces. Use ":memory:" as the path for tests.
type DB struct {
	conn *sql.DB
}

// New opens the database, configures WAL mode and foreign keys, and runs
// the idempotent migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. Every statement is idempotent, so restarting
// against an existing database is safe.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS coaches (
			id                  TEXT PRIMARY KEY,
			email               TEXT NOT NULL UNIQUE,
			password_hash       TEXT NOT NULL DEFAULT '',
			google_id           TEXT NOT NULL DEFAULT '',
			name                TEXT NOT NULL DEFAULT '',
			subscription_status TEXT NOT NULL DEFAULT 'trialing',
			accent_color        TEXT NOT NULL DEFAULT '1F6FEB',
			logo_url            TEXT NOT NULL DEFAULT '',
			logo_position       TEXT NOT NULL DEFAULT 'center',
			cover_heading       TEXT NOT NULL DEFAULT '',
			cover_body          TEXT NOT NULL DEFAULT '',
			footer_text         TEXT NOT NULL DEFAULT '',
			show_logo_on_plan   INTEGER NOT NULL DEFAULT 1,
			created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_coaches_google_id ON coaches(google_id);
	`)
	if err != nil {
		return fmt.Errorf("creating coaches table: %w", err)
	}

	// Clients carry the per-kind artifact pointers inline: one current
	// pointer per (client, kind), never a history table.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS clients (
			id                         INTEGER PRIMARY KEY AUTOINCREMENT,
			coach_id                   TEXT NOT NULL REFERENCES coaches(id),
			name                       TEXT NOT NULL,
			email                      TEXT NOT NULL DEFAULT '',
			notes                      TEXT NOT NULL DEFAULT '',
			meal_plan_url              TEXT NOT NULL DEFAULT '',
			meal_plan_generated_at     DATETIME,
			training_plan_url          TEXT NOT NULL DEFAULT '',
			training_plan_generated_at DATETIME,
			created_at                 DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at                 DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at                 DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_clients_coach_id ON clients(coach_id);
	`)
	if err != nil {
		return fmt.Errorf("creating clients table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS meals (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			coach_id    TEXT NOT NULL REFERENCES coaches(id),
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			calories    INTEGER NOT NULL DEFAULT 0,
			protein_g   INTEGER NOT NULL DEFAULT 0,
			carbs_g     INTEGER NOT NULL DEFAULT 0,
			fat_g       INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_meals_coach_id ON meals(coach_id);
	`)
	if err != nil {
		return fmt.Errorf("creating meals table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS exercises (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			coach_id     TEXT NOT NULL REFERENCES coaches(id),
			name         TEXT NOT NULL,
			muscle_group TEXT NOT NULL DEFAULT '',
			sets         INTEGER NOT NULL DEFAULT 0,
			reps         INTEGER NOT NULL DEFAULT 0,
			rest_seconds INTEGER NOT NULL DEFAULT 0,
			instructions TEXT NOT NULL DEFAULT '',
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_exercises_coach_id ON exercises(coach_id);
	`)
	if err != nil {
		return fmt.Errorf("creating exercises table: %w", err)
	}

	return nil
}
