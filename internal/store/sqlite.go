package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"quantbt/internal/domain"
)

// Compile-time interface check.
var _ RunStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	strategy   TEXT NOT NULL,
	symbol     TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date   TEXT NOT NULL,
	cost_rate  REAL NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS run_metrics (
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	name   TEXT NOT NULL,
	value  REAL NOT NULL,
	PRIMARY KEY (run_id, name)
);
CREATE INDEX IF NOT EXISTS idx_runs_symbol ON runs(symbol);
`

// SQLiteStore implements RunStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, applies the
// schema, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts a run record and its metrics in one transaction. The
// returned ID is also written back into run.ID.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *domain.RunRecord, metrics domain.Metrics) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (strategy, symbol, start_date, end_date, cost_rate, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.Strategy,
		run.Symbol,
		run.StartDate.Format(time.DateOnly),
		run.EndDate.Format(time.DateOnly),
		run.CostRate,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for name, value := range metrics.Map() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_metrics (run_id, name, value) VALUES (?, ?, ?)`,
			id, name, value,
		); err != nil {
			return 0, fmt.Errorf("inserting metric %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	run.ID = id
	return id, nil
}

// ListRuns returns all runs for a symbol, newest first. An empty symbol
// matches every run.
func (s *SQLiteStore) ListRuns(ctx context.Context, symbol string) ([]domain.RunRecord, error) {
	query := `SELECT id, strategy, symbol, start_date, end_date, cost_rate, created_at
		  FROM runs`
	args := []any{}
	if symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.RunRecord
	for rows.Next() {
		var r domain.RunRecord
		var start, end, created string
		if err := rows.Scan(&r.ID, &r.Strategy, &r.Symbol, &start, &end, &r.CostRate, &created); err != nil {
			return nil, err
		}
		if r.StartDate, err = time.Parse(time.DateOnly, start); err != nil {
			return nil, fmt.Errorf("parsing start_date %q: %w", start, err)
		}
		if r.EndDate, err = time.Parse(time.DateOnly, end); err != nil {
			return nil, fmt.Errorf("parsing end_date %q: %w", end, err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", created, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetMetrics retrieves the metrics table stored for a run.
func (s *SQLiteStore) GetMetrics(ctx context.Context, runID int64) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value FROM run_metrics WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := make(map[string]float64)
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metrics[name] = value
	}
	return metrics, rows.Err()
}
