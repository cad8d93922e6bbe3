package backtest

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"quantbt/internal/domain"
	"quantbt/internal/series"
)

// TradingPeriods is the annualization constant for daily data.
const TradingPeriods = 252

// ErrEmptyInput is returned when no net-return observations remain after
// dropping NaN entries. Emitting an all-zero metrics table for an empty run
// would be misleading, so the calculator rejects it instead.
var ErrEmptyInput = errors.New("backtest: no return observations")

// ComputeMetrics derives the fixed table of performance statistics from a
// composed return stream. NaN net-return entries (typically the first row
// of a differenced series) are dropped before counting observations.
func ComputeMetrics(netReturns, equity, benchmark series.Series) (domain.Metrics, error) {
	returns := netReturns.DropNaN()
	if returns.IsEmpty() || equity.IsEmpty() || benchmark.IsEmpty() {
		return domain.Metrics{}, ErrEmptyInput
	}

	n := returns.Len()
	var m domain.Metrics

	m.TotalReturn = equity.Last() - 1

	// CAGR annualizes over the observed period length.
	years := float64(n) / TradingPeriods
	if years > 0 {
		m.CAGR = math.Pow(1+m.TotalReturn, 1/years) - 1
	}

	std := stat.StdDev(returns.Values, nil)
	mean := stat.Mean(returns.Values, nil)
	m.Volatility = std * math.Sqrt(TradingPeriods)
	if std > 0 {
		m.SharpeRatio = mean * TradingPeriods / m.Volatility
	}

	m.MaxDrawdown = maxDrawdown(equity)
	if m.MaxDrawdown != 0 {
		m.CalmarRatio = m.CAGR / math.Abs(m.MaxDrawdown)
	}

	var wins, losses, nonzero int
	var winSum, lossSum float64
	for _, r := range returns.Values {
		switch {
		case r > 0:
			wins++
			winSum += r
			nonzero++
		case r < 0:
			losses++
			lossSum += r
			nonzero++
		}
	}
	m.TotalTrades = nonzero
	if nonzero > 0 {
		m.WinRate = float64(wins) / float64(nonzero)
	}
	if wins > 0 {
		m.AvgWin = winSum / float64(wins)
	}
	if losses > 0 {
		m.AvgLoss = lossSum / float64(losses)
	}
	if m.AvgLoss != 0 {
		m.WinLossRatio = math.Abs(m.AvgWin / m.AvgLoss)
	}

	m.BuyHoldReturn = benchmark.Last() - 1
	m.Outperformance = m.TotalReturn - m.BuyHoldReturn

	return m, nil
}

// maxDrawdown returns the largest percentage decline of equity from its
// running peak. The result is in [-1, 0].
func maxDrawdown(equity series.Series) float64 {
	peak := math.Inf(-1)
	worst := 0.0
	for _, v := range equity.Values {
		if v > peak {
			peak = v
		}
		dd := (v - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	return worst
}
