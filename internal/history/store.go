// Package history persists run outcomes to a local SQLite database so
// `hostprep history` can show what past runs changed. Recording is best
// effort: a history failure must never fail a provisioning run, so callers
// log store errors and move on.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hostprep/hostprep/internal/ports"
)

// DefaultPath is where the run database lives.
const DefaultPath = "~/.local/state/hostprep/history.db"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	manifest    TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	dry_run     INTEGER NOT NULL,
	applied     INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	success     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_steps (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	seq         INTEGER NOT NULL,
	step_id     TEXT NOT NULL,
	status      TEXT NOT NULL,
	detail      TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// RunRecord is one persisted provisioning run.
type RunRecord struct {
	ID         string
	Manifest   string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Applied    int
	Skipped    int
	Failed     int
	Success    bool
}

// StepRecord is one step outcome within a run.
type StepRecord struct {
	StepID   string
	Status   string
	Detail   string
	Duration time.Duration
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Store is a SQLite-backed run archive.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	path = ports.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun persists a run and its step outcomes in one transaction.
func (s *Store) RecordRun(ctx context.Context, run RunRecord, steps []StepRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, manifest, started_at, finished_at, dry_run, applied, skipped, failed, success)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Manifest,
		run.StartedAt.UnixMilli(), run.FinishedAt.UnixMilli(),
		boolInt(run.DryRun), run.Applied, run.Skipped, run.Failed, boolInt(run.Success),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for seq, step := range steps {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_steps (run_id, seq, step_id, status, detail, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, seq, step.StepID, step.Status, step.Detail, step.Duration.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert run step: %w", err)
		}
	}

	return tx.Commit()
}

// boolInt encodes a bool as the 0/1 SQLite convention.
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Clear deletes all recorded runs.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM run_steps`); err != nil {
		return fmt.Errorf("clear run steps: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs, most recent first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, manifest, started_at, finished_at, dry_run, applied, skipped, failed, success
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var started, finished int64
		var dryRun, success int
		if err := rows.Scan(&r.ID, &r.Manifest, &started, &finished, &dryRun, &r.Applied, &r.Skipped, &r.Failed, &success); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(started)
		r.FinishedAt = time.UnixMilli(finished)
		r.DryRun = dryRun != 0
		r.Success = success != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunSteps returns the step outcomes of one run in execution order.
func (s *Store) RunSteps(ctx context.Context, runID string) ([]StepRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT step_id, status, detail, duration_ms
		 FROM run_steps WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run steps: %w", err)
	}
	defer rows.Close()

	var steps []StepRecord
	for rows.Next() {
		var s StepRecord
		var durationMS int64
		if err := rows.Scan(&s.StepID, &s.Status, &s.Detail, &durationMS); err != nil {
			return nil, fmt.Errorf("scan run step: %w", err)
		}
		s.Duration = time.Duration(durationMS) * time.Millisecond
		steps = append(steps, s)
	}
	return steps, rows.Err()
}
