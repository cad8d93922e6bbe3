package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"quantbt/internal/backtest"
	"quantbt/internal/collect"
	"quantbt/internal/config"
	"quantbt/internal/domain"
	"quantbt/internal/export"
	"quantbt/internal/report"
	"quantbt/internal/store"
	"quantbt/internal/strategy"
	"quantbt/internal/strategy/builtins"
	"quantbt/internal/util"
)

func main() {
	var (
		symbol   = flag.String("symbol", "", "backtest a single symbol (default: every configured ticker)")
		stratArg = flag.String("strategy", "all", "strategy to run: crossover, mean-reversion, momentum, or all")
		csvDir   = flag.String("csv-dir", "", "export per-run CSV files into this directory")
		noSave   = flag.Bool("no-save", false, "skip persisting runs to SQLite")
	)
	flag.Parse()

	cfgPath := "config/quantbt.yaml"
	if p := os.Getenv("QUANTBT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	start, err := time.Parse(time.DateOnly, cfg.Data.StartDate)
	if err != nil {
		log.Fatalf("invalid start date %q: %v", cfg.Data.StartDate, err)
	}
	end, err := time.Parse(time.DateOnly, cfg.Data.EndDate)
	if err != nil {
		log.Fatalf("invalid end date %q: %v", cfg.Data.EndDate, err)
	}

	reg := strategy.NewRegistry()
	sc := cfg.Strategies
	reg.Register(builtins.NewCrossover(sc.Crossover.Fast, sc.Crossover.Slow))
	reg.Register(builtins.NewMeanReversion(sc.MeanReversion.Window, sc.MeanReversion.Threshold))
	reg.Register(builtins.NewMomentum(sc.Momentum.Lookback))

	symbols := cfg.Data.Tickers
	if *symbol != "" {
		symbols = []string{*symbol}
	}

	bars := store.NewParquetStore(cfg.Storage.DataDir)

	var runs store.RunStore
	if !*noSave {
		s, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open run store: %v", err)
		}
		defer s.Close()
		runs = s
	}

	ctx := context.Background()
	for _, sym := range symbols {
		if err := runSymbol(ctx, cfg, reg, bars, runs, sym, start, end, *stratArg, *csvDir); err != nil {
			log.Fatalf("%s: %v", sym, err)
		}
	}
}

func runSymbol(
	ctx context.Context,
	cfg *config.Config,
	reg *strategy.Registry,
	bars store.BarStore,
	runs store.RunStore,
	symbol string,
	start, end time.Time,
	stratArg, csvDir string,
) error {
	prices, marketReturns, err := collect.LoadPrices(ctx, bars, symbol, start, end)
	if err != nil {
		return err
	}

	bt := backtest.NewBacktester(cfg.Backtest.CostRate)

	var results []*backtest.Result
	if stratArg == "all" {
		results, err = bt.RunAll(reg, prices, marketReturns)
		if err != nil {
			return err
		}
	} else {
		strat, ok := reg.Get(stratArg)
		if !ok {
			return fmt.Errorf("unknown strategy %q (have: %v)", stratArg, reg.List())
		}
		res, err := bt.Run(strat, prices, marketReturns)
		if err != nil {
			return err
		}
		results = []*backtest.Result{res}
	}

	fmt.Printf("\n%s (%s .. %s, %d bars)\n", symbol,
		cfg.Data.StartDate, cfg.Data.EndDate, prices.Len())
	for _, res := range results {
		report.WriteMetrics(os.Stdout, res)
	}
	if len(results) > 1 {
		report.WriteComparison(os.Stdout, results)
	}

	for _, res := range results {
		if runs != nil {
			rec := &domain.RunRecord{
				Strategy:  res.Strategy,
				Symbol:    symbol,
				StartDate: start,
				EndDate:   end,
				CostRate:  cfg.Backtest.CostRate,
			}
			if _, err := runs.SaveRun(ctx, rec, res.Metrics); err != nil {
				return fmt.Errorf("saving run: %w", err)
			}
		}

		if csvDir != "" {
			if err := os.MkdirAll(csvDir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(csvDir, fmt.Sprintf("%s-%s.csv", symbol, res.Strategy))
			if err := export.WriteResultFile(path, res, prices); err != nil {
				return err
			}
		}
	}
	return nil
}
