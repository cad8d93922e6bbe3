// Package collect fetches daily bar data from the Alpaca market-data API
// into the local Parquet cache. It is the data-supply side of the system:
// the backtest pipeline itself never performs I/O and only sees the cleaned
// price and return series produced here.
package collect

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"quantbt/internal/domain"
	"quantbt/internal/series"
	"quantbt/internal/store"
	"quantbt/internal/util"
)

// barsClient is the slice of the Alpaca market-data client the collector
// uses. *marketdata.Client satisfies it.
type barsClient interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// Collector downloads daily bars for a ticker universe and caches them in a
// BarStore. Fetches are cache-first: a symbol with bars already covering the
// requested range is not fetched again unless Force is set.
type Collector struct {
	client  barsClient
	store   store.BarStore
	limiter *util.RateLimiter
	tickers []string
	start   time.Time
	end     time.Time
	Force   bool
	log     *slog.Logger
}

// NewCollector creates a Collector for the given tickers and date range,
// talking to Alpaca with the supplied credentials.
func NewCollector(apiKey, apiSecret, dataURL string, s store.BarStore, tickers []string, start, end time.Time) *Collector {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}

	return &Collector{
		client:  marketdata.NewClient(opts),
		store:   s,
		limiter: util.NewRateLimiter(200),
		tickers: tickers,
		start:   start,
		end:     end,
		log:     slog.Default().With("component", "collect"),
	}
}

// Run fetches bars for every configured ticker, retrying transient API
// failures. A failure on one ticker aborts the run.
func (c *Collector) Run(ctx context.Context) error {
	for _, symbol := range c.tickers {
		if !c.Force {
			cached, err := c.store.ReadBars(ctx, symbol, c.start, c.end)
			if err != nil {
				return fmt.Errorf("checking cache for %s: %w", symbol, err)
			}
			if covers(cached, c.start, c.end) {
				c.log.Info("cache hit", "symbol", symbol, "bars", len(cached))
				continue
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		var raw []marketdata.Bar
		err := util.Retry(ctx, 3, time.Second, func() error {
			var err error
			raw, err = c.client.GetBars(symbol, marketdata.GetBarsRequest{
				TimeFrame: marketdata.OneDay,
				Start:     c.start,
				End:       c.end,
			})
			return err
		})
		if err != nil {
			return fmt.Errorf("fetching bars for %s: %w", symbol, err)
		}

		bars := cleanBars(symbol, raw)
		if err := c.store.WriteBars(ctx, bars); err != nil {
			return fmt.Errorf("caching bars for %s: %w", symbol, err)
		}
		c.log.Info("fetched", "symbol", symbol, "bars", len(bars))
	}
	return nil
}

// cleanBars converts API bars into domain bars, dropping observations with
// non-positive closes and sorting by timestamp.
func cleanBars(symbol string, raw []marketdata.Bar) []domain.Bar {
	bars := make([]domain.Bar, 0, len(raw))
	for _, b := range raw {
		if b.Close <= 0 {
			continue
		}
		bars = append(bars, domain.Bar{
			Symbol:     symbol,
			Timestamp:  b.Timestamp.UTC(),
			Open:       b.Open,
			High:       b.High,
			Low:        b.Low,
			Close:      b.Close,
			Volume:     int64(b.Volume),
			TradeCount: int64(b.TradeCount),
			VWAP:       b.VWAP,
		})
	}
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})
	return bars
}

// covers reports whether cached bars span the requested range closely
// enough to skip a fetch. Daily data never lands exactly on the range
// bounds (weekends, holidays), so a week of slack is allowed on each side.
func covers(bars []domain.Bar, start, end time.Time) bool {
	if len(bars) == 0 {
		return false
	}
	const slack = 7 * 24 * time.Hour
	first := bars[0].Timestamp
	last := bars[len(bars)-1].Timestamp
	return !first.After(start.Add(slack)) && !last.Before(end.Add(-slack))
}

// LoadPrices reads cached bars for a symbol and returns the cleaned close
// price series together with its one-period return series.
func LoadPrices(ctx context.Context, s store.BarStore, symbol string, start, end time.Time) (series.Series, series.Series, error) {
	bars, err := s.ReadBars(ctx, symbol, start, end)
	if err != nil {
		return series.Series{}, series.Series{}, fmt.Errorf("reading bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return series.Series{}, series.Series{}, fmt.Errorf("no cached bars for %s in %s..%s",
			symbol, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	prices := series.FromBars(bars)
	return prices, prices.Returns(), nil
}
