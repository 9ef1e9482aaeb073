package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillEndMinutes(db); err != nil {
		return fmt.Errorf("backfilling plan item end minutes: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plan_items (
		id               TEXT PRIMARY KEY,
		day              TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		start_minutes    INTEGER NOT NULL CHECK(start_minutes >= 0 AND start_minutes < 1440),
		duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0),
		text             TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_items_day ON plan_items(day, start_minutes)`,

	`CREATE TABLE IF NOT EXISTS planner_settings (
		id                       TEXT PRIMARY KEY DEFAULT 'default',
		zoom_level               REAL NOT NULL,
		snap_step_minutes        INTEGER NOT NULL,
		start_hour               INTEGER NOT NULL,
		end_hour                 INTEGER NOT NULL,
		default_duration_minutes INTEGER NOT NULL,
		end_label                TEXT NOT NULL DEFAULT '',
		now_and_next             INTEGER NOT NULL DEFAULT 0,
		circular_progress        INTEGER NOT NULL DEFAULT 0,
		show_task_notification   INTEGER NOT NULL DEFAULT 1,
		updated_at               TEXT NOT NULL
	)`,

	// timeline colouring options
	`ALTER TABLE planner_settings ADD COLUMN timeline_colored INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE planner_settings ADD COLUMN timeline_start_color TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE planner_settings ADD COLUMN timeline_end_color TEXT NOT NULL DEFAULT ''`,

	// end_minutes backs the overlap query
	`ALTER TABLE plan_items ADD COLUMN end_minutes INTEGER NOT NULL DEFAULT 0`,
}

// migrateBackfillEndMinutes fills end_minutes for rows written before the
// column existed. Idempotent: only rows with end_minutes = 0 are touched.
func migrateBackfillEndMinutes(db *sql.DB) error {
	ctx := context.Background()
	_, err := db.ExecContext(ctx,
		`UPDATE plan_items SET end_minutes = start_minutes + duration_minutes WHERE end_minutes = 0`)
	if err != nil {
		return fmt.Errorf("updating end_minutes: %w", err)
	}
	return nil
}
