package backtest

import (
	"fmt"

	"quantbt/internal/domain"
	"quantbt/internal/series"
	"quantbt/internal/strategy"
)

// Result is the complete bundle produced by one backtest run: every
// intermediate series plus the metrics table. Each run allocates its own
// bundle; results from earlier runs are never mutated.
type Result struct {
	Strategy    string
	Signals     series.Series
	Diagnostics strategy.Diagnostics
	Positions   series.Series
	NetReturns  series.Series
	Equity      series.Series
	Benchmark   series.Series
	Metrics     domain.Metrics
}

// Backtester runs strategies over a price series and its market returns.
type Backtester struct {
	costRate float64
}

// NewBacktester creates a Backtester charging costRate per position change.
func NewBacktester(costRate float64) *Backtester {
	return &Backtester{costRate: costRate}
}

// Run executes the full pipeline for one strategy: generate signals, shift
// them into positions, compose the cost-adjusted return stream, and compute
// metrics. Prices and marketReturns are treated as read-only, so concurrent
// runs over the same inputs are safe.
func (bt *Backtester) Run(strat strategy.Strategy, prices, marketReturns series.Series) (*Result, error) {
	signals, diag := strat.GenerateSignals(prices)
	positions := Positions(signals)
	comp := Compose(positions, marketReturns, bt.costRate)

	metrics, err := ComputeMetrics(comp.NetReturns, comp.Equity, comp.Benchmark)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", strat.Name(), err)
	}

	return &Result{
		Strategy:    strat.Name(),
		Signals:     signals,
		Diagnostics: diag,
		Positions:   AlignPositions(positions, marketReturns),
		NetReturns:  comp.NetReturns,
		Equity:      comp.Equity,
		Benchmark:   comp.Benchmark,
		Metrics:     metrics,
	}, nil
}

// RunAll executes every strategy registered in reg, in List order, over the
// same inputs. Runs share no mutable state; a failed run aborts the batch.
func (bt *Backtester) RunAll(reg *strategy.Registry, prices, marketReturns series.Series) ([]*Result, error) {
	names := reg.List()
	results := make([]*Result, 0, len(names))
	for _, name := range names {
		strat, _ := reg.Get(name)
		res, err := bt.Run(strat, prices, marketReturns)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
