// Package store persists the inputs and outputs of the backtest pipeline:
// daily bars in Parquet files and completed run results in SQLite.
package store

import (
	"context"
	"time"

	"quantbt/internal/domain"
)

// BarStore persists and retrieves daily OHLCV bar data.
type BarStore interface {
	// WriteBars persists a batch of bars, merging with existing data.
	WriteBars(ctx context.Context, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol within [start, end],
	// sorted by timestamp.
	ReadBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols with stored bars.
	ListSymbols(ctx context.Context) ([]string, error)
}

// RunStore persists completed backtest runs and their metrics tables.
type RunStore interface {
	// SaveRun inserts a run record and its metrics, returning the run ID.
	SaveRun(ctx context.Context, run *domain.RunRecord, metrics domain.Metrics) (int64, error)

	// ListRuns returns all runs for a symbol, newest first. An empty
	// symbol matches every run.
	ListRuns(ctx context.Context, symbol string) ([]domain.RunRecord, error)

	// GetMetrics retrieves the metrics table stored for a run.
	GetMetrics(ctx context.Context, runID int64) (map[string]float64, error)
}
