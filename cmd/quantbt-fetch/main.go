package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quantbt/internal/collect"
	"quantbt/internal/config"
	"quantbt/internal/store"
	"quantbt/internal/util"
)

func main() {
	force := flag.Bool("force", false, "refetch symbols even when the cache already covers the range")
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pstore := store.NewParquetStore(cfg.Storage.DataDir)
	collector := collect.NewCollector(
		cfg.Alpaca.APIKey,
		cfg.Alpaca.APISecret,
		cfg.Alpaca.DataURL,
		pstore,
		cfg.Data.Tickers,
		start,
		end,
	)
	collector.Force = *force

	if err := collector.Run(ctx); err != nil {
		log.Fatalf("collect failed: %v", err)
	}
	logger.Info("collection complete", "tickers", len(cfg.Data.Tickers))
}
