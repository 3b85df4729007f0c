// Package migration brings the members schema up on a fresh database.
// The presence of the members table is the sentinel: when it already exists
// the whole run is skipped, so restarts against a provisioned database are
// cheap and idempotent.
package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

const sentinelQuery = "SELECT to_regclass('public.members') IS NOT NULL"

type step struct {
	name string
	stmt string
}

var steps = []step{
	{
		name: "create_table_members",
		stmt: `CREATE TABLE IF NOT EXISTS members (
  id         BIGSERIAL   PRIMARY KEY,
  first_name TEXT        NOT NULL,
  last_name  TEXT        NOT NULL,
  gender     TEXT        NOT NULL CHECK (gender IN ('male', 'female', 'other')),
  birth_date DATE        NOT NULL,
  country    CHAR(2)     NOT NULL,
  consent    BOOLEAN     NOT NULL DEFAULT FALSE,
  photo_path TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		name: "create_index_members_last_name",
		stmt: `CREATE INDEX IF NOT EXISTS idx_members_last_name ON members (last_name);`,
	},
	{
		name: "create_index_members_country",
		stmt: `CREATE INDEX IF NOT EXISTS idx_members_country ON members (country);`,
	},
	{
		name: "create_index_members_created_at",
		stmt: `CREATE INDEX IF NOT EXISTS idx_members_created_at ON members (created_at);`,
	},
}

// EnsureMigrated creates the members table and its indexes unless the table
// already exists. Steps run in order; the first failure aborts the run.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	ev := events{loc: loc, host: dbHost, start: time.Now()}
	ev.emit("info", "schema_check", nil)

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		ev.emit("error", "schema_check_failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("check schema sentinel: %w", err)
	}
	if exists {
		ev.emit("info", "schema_present", nil)
		return nil
	}

	for _, s := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, s.stmt); err != nil {
			ev.emit("error", "schema_step_failed", map[string]any{
				"step":  s.name,
				"error": err.Error(),
			})
			return fmt.Errorf("apply %s: %w", s.name, err)
		}
		ev.emit("info", "schema_step_applied", map[string]any{
			"step":    s.name,
			"step_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	ev.emit("info", "schema_ready", nil)
	return nil
}

// events writes migration progress as JSON lines, one per event, in the same
// shape the request logger uses.
type events struct {
	loc   *time.Location
	host  string
	start time.Time
}

func (e events) emit(level, event string, extra map[string]any) {
	entry := map[string]any{
		"ts":         time.Now().In(e.loc).Format(time.RFC3339Nano),
		"level":      level,
		"component":  "migration",
		"event":      event,
		"db_host":    e.host,
		"elapsed_ms": time.Since(e.start).Milliseconds(),
	}
	for k, v := range extra {
		entry[k] = v
	}

	b, err := json.Marshal(entry)
	if err != nil {
		log.Printf("marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
