package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		channel     TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','paused','done','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS units (
		id                TEXT PRIMARY KEY,
		plan_id           TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		parent_id         TEXT REFERENCES units(id) ON DELETE CASCADE,
		title             TEXT NOT NULL,
		kind              TEXT NOT NULL
		                  CHECK(kind IN ('activity','subtask')),
		status            TEXT NOT NULL DEFAULT 'todo'
		                  CHECK(status IN ('todo','in_progress','done','cancelled')),
		duration          INTEGER NOT NULL DEFAULT 0 CHECK(duration >= 0),
		start_date        TEXT NOT NULL,
		due_date          TEXT NOT NULL,
		calendar_synced   INTEGER NOT NULL DEFAULT 0,
		calendar_event_id TEXT NOT NULL DEFAULT '',
		calendar_provider TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_units_plan ON units(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_units_parent ON units(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_units_status ON units(status)`,

	// depends_on_id carries no foreign key: deleting a unit leaves the
	// dependency rows of its dependents in place, and the graph treats
	// the dangling ids as absent.
	`CREATE TABLE IF NOT EXISTS unit_dependencies (
		unit_id       TEXT NOT NULL REFERENCES units(id) ON DELETE CASCADE,
		depends_on_id TEXT NOT NULL,
		PRIMARY KEY (unit_id, depends_on_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_unit_deps_target ON unit_dependencies(depends_on_id)`,

	// Add notes to plans
	`ALTER TABLE plans ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,
}
