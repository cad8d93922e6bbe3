package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"quantbt/internal/domain"
)

func TestParquetStorePath(t *testing.T) {
	ps := NewParquetStore("/data")

	got := ps.barPath("spy", 2024)
	want := filepath.Join("/data", "daily", "SPY", "2024.parquet")
	if got != want {
		t.Errorf("barPath mismatch:\n  got  %s\n  want %s", got, want)
	}
}

func TestParquetStoreWriteReadBars(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	bars := []domain.Bar{
		{
			Symbol:    "SPY",
			Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Open:      470.0,
			High:      472.5,
			Low:       469.0,
			Close:     472.0,
			Volume:    80000000,
			VWAP:      471.0,
		},
		{
			Symbol:    "SPY",
			Timestamp: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			Open:      472.0,
			High:      473.0,
			Low:       468.0,
			Close:     469.5,
			Volume:    75000000,
			VWAP:      470.5,
		},
	}

	if err := ps.WriteBars(ctx, bars); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	got, err := ps.ReadBars(ctx, "SPY", start, end)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("ReadBars returned %d bars, want 2", len(got))
	}
	if !got[0].Timestamp.Before(got[1].Timestamp) {
		t.Error("bars not sorted by timestamp")
	}
	if got[0].Close != 472.0 || got[1].Close != 469.5 {
		t.Errorf("closes = %v/%v, want 472.0/469.5", got[0].Close, got[1].Close)
	}
}

func TestParquetStoreMergeOverwrites(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	first := []domain.Bar{{Symbol: "QQQ", Timestamp: ts, Close: 400}}
	second := []domain.Bar{{Symbol: "QQQ", Timestamp: ts, Close: 401}}

	if err := ps.WriteBars(ctx, first); err != nil {
		t.Fatalf("first WriteBars: %v", err)
	}
	if err := ps.WriteBars(ctx, second); err != nil {
		t.Fatalf("second WriteBars: %v", err)
	}

	got, err := ps.ReadBars(ctx, "QQQ", ts.AddDate(0, 0, -1), ts.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("merged read returned %d bars, want 1", len(got))
	}
	if got[0].Close != 401 {
		t.Errorf("merged close = %v, want the rewritten 401", got[0].Close)
	}
}

func TestParquetStoreRangeFilter(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	bars := []domain.Bar{
		{Symbol: "GLD", Timestamp: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Close: 180},
		{Symbol: "GLD", Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Close: 210},
	}
	if err := ps.WriteBars(ctx, bars); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	got, err := ps.ReadBars(ctx, "GLD",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 1 || got[0].Close != 210 {
		t.Errorf("range filter returned %v, want only the 2024 bar", got)
	}
}

func TestParquetStoreListSymbols(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	bars := []domain.Bar{
		{Symbol: "TLT", Timestamp: ts, Close: 95},
		{Symbol: "IWM", Timestamp: ts, Close: 200},
	}
	if err := ps.WriteBars(ctx, bars); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	symbols, err := ps.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("ListSymbols: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "IWM" || symbols[1] != "TLT" {
		t.Errorf("ListSymbols = %v, want [IWM TLT]", symbols)
	}
}

func TestSQLiteStoreSaveAndListRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	run := &domain.RunRecord{
		Strategy:  "crossover",
		Symbol:    "SPY",
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		CostRate:  0.001,
	}
	metrics := domain.Metrics{
		TotalReturn: 0.42,
		SharpeRatio: 1.1,
		TotalTrades: 37,
	}

	id, err := s.SaveRun(ctx, run, metrics)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id == 0 || run.ID != id {
		t.Errorf("SaveRun id = %d, run.ID = %d, want matching nonzero", id, run.ID)
	}

	runs, err := s.ListRuns(ctx, "SPY")
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("ListRuns returned %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.Strategy != "crossover" || got.Symbol != "SPY" || got.CostRate != 0.001 {
		t.Errorf("ListRuns returned %+v", got)
	}
	if !got.StartDate.Equal(run.StartDate) || !got.EndDate.Equal(run.EndDate) {
		t.Errorf("date round-trip: got %v..%v, want %v..%v",
			got.StartDate, got.EndDate, run.StartDate, run.EndDate)
	}

	// Unknown symbol matches nothing; empty symbol matches everything.
	if runs, _ := s.ListRuns(ctx, "QQQ"); len(runs) != 0 {
		t.Errorf("ListRuns(QQQ) = %d runs, want 0", len(runs))
	}
	if runs, _ := s.ListRuns(ctx, ""); len(runs) != 1 {
		t.Errorf("ListRuns(\"\") = %d runs, want 1", len(runs))
	}
}

func TestSQLiteStoreGetMetrics(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	metrics := domain.Metrics{
		TotalReturn:    0.10,
		CAGR:           0.05,
		MaxDrawdown:    -0.2,
		TotalTrades:    12,
		BuyHoldReturn:  0.08,
		Outperformance: 0.02,
	}
	run := &domain.RunRecord{
		Strategy:  "momentum",
		Symbol:    "QQQ",
		StartDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	id, err := s.SaveRun(ctx, run, metrics)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := s.GetMetrics(ctx, id)
	if err != nil {
		t.Fatalf("GetMetrics: %v", err)
	}
	if len(got) != 13 {
		t.Errorf("GetMetrics returned %d entries, want 13", len(got))
	}
	if got["total_return"] != 0.10 {
		t.Errorf("total_return = %v, want 0.10", got["total_return"])
	}
	if got["max_drawdown"] != -0.2 {
		t.Errorf("max_drawdown = %v, want -0.2", got["max_drawdown"])
	}
	if got["total_trades"] != 12 {
		t.Errorf("total_trades = %v, want 12", got["total_trades"])
	}
}
