package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// RunInfo describes a run when it is registered in the index.
type RunInfo struct {
	ID        string
	StartedAt time.Time
	Days      int
	Grass     float32
	Animals   int
}

// RunRow is a run as stored in the index.
type RunRow struct {
	ID        string
	StartedAt string
	Days      int
	Grass     float64
	Animals   int
	Survivors sql.NullInt64 // null until the run finishes
}

// RunIndex records runs and their per-day totals in a SQLite database.
// The index is an output sink only; runs are never resumed from it.
// A nil *RunIndex discards everything.
type RunIndex struct {
	db *sql.DB
}

// OpenRunIndex opens or creates the index at path.
// Returns nil if path is empty (index disabled).
func OpenRunIndex(path string) (*RunIndex, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &RunIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			days INTEGER NOT NULL,
			grass REAL NOT NULL,
			animals INTEGER NOT NULL,
			survivors INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS days (
			run_id TEXT NOT NULL REFERENCES runs(id),
			day INTEGER NOT NULL,
			grass REAL NOT NULL,
			population INTEGER NOT NULL,
			kills INTEGER NOT NULL,
			grazes INTEGER NOT NULL,
			failures INTEGER NOT NULL,
			deaths INTEGER NOT NULL,
			PRIMARY KEY (run_id, day)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// BeginRun registers a new run.
func (x *RunIndex) BeginRun(ctx context.Context, run RunInfo) error {
	if x == nil {
		return nil
	}
	_, err := x.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, days, grass, animals) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), run.Days, float64(run.Grass), run.Animals)
	if err != nil {
		return fmt.Errorf("index begin run: %w", err)
	}
	return nil
}

// RecordDay stores the totals of one finished day.
func (x *RunIndex) RecordDay(ctx context.Context, runID string, s DayStats) error {
	if x == nil {
		return nil
	}
	_, err := x.db.ExecContext(ctx,
		`INSERT INTO days (run_id, day, grass, population, kills, grazes, failures, deaths)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, s.Day, s.GrassAfter, s.Population, s.Kills, s.Grazes, s.Failures(), s.Deaths())
	if err != nil {
		return fmt.Errorf("index record day %d: %w", s.Day, err)
	}
	return nil
}

// FinishRun stores the final survivor count.
func (x *RunIndex) FinishRun(ctx context.Context, runID string, survivors int) error {
	if x == nil {
		return nil
	}
	res, err := x.db.ExecContext(ctx, `UPDATE runs SET survivors = ? WHERE id = ?`, survivors, runID)
	if err != nil {
		return fmt.Errorf("index finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("index finish run: unknown run %q", runID)
	}
	return nil
}

// Runs lists every indexed run, oldest first.
func (x *RunIndex) Runs(ctx context.Context) ([]RunRow, error) {
	if x == nil {
		return nil, nil
	}
	rows, err := x.db.QueryContext(ctx,
		`SELECT id, started_at, days, grass, animals, survivors FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Days, &r.Grass, &r.Animals, &r.Survivors); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DayPopulations returns the end-of-day population of a run, indexed by day-1.
func (x *RunIndex) DayPopulations(ctx context.Context, runID string) ([]int, error) {
	if x == nil {
		return nil, nil
	}
	rows, err := x.db.QueryContext(ctx, `SELECT population FROM days WHERE run_id = ? ORDER BY day`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Close closes the database.
func (x *RunIndex) Close() error {
	if x == nil {
		return nil
	}
	return x.db.Close()
}
