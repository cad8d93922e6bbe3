// Package domain holds the shared value types passed between the data
// layer, the strategies, and the backtest pipeline.
package domain

import "time"

// Bar is one daily OHLCV observation for a single symbol.
type Bar struct {
	Symbol     string
	Timestamp  time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     int64
	TradeCount int64
	VWAP       float64
}

// Signal values. A signal is the directional call made at the close of a
// period; it becomes a position one period later.
const (
	SignalShort float64 = -1
	SignalFlat  float64 = 0
	SignalLong  float64 = 1
)

// Metrics is the fixed table of performance statistics produced by one
// backtest run. All ratio fields fall back to 0 when their denominator is
// degenerate (zero variance, zero drawdown, no trades).
type Metrics struct {
	TotalReturn    float64
	CAGR           float64
	Volatility     float64
	SharpeRatio    float64
	MaxDrawdown    float64
	CalmarRatio    float64
	WinRate        float64
	TotalTrades    int
	AvgWin         float64
	AvgLoss        float64
	WinLossRatio   float64
	BuyHoldReturn  float64
	Outperformance float64
}

// Map returns the metrics as a flat name→value map for export and
// persistence. TotalTrades is included as a float64.
func (m Metrics) Map() map[string]float64 {
	return map[string]float64{
		"total_return":    m.TotalReturn,
		"cagr":            m.CAGR,
		"volatility":      m.Volatility,
		"sharpe_ratio":    m.SharpeRatio,
		"max_drawdown":    m.MaxDrawdown,
		"calmar_ratio":    m.CalmarRatio,
		"win_rate":        m.WinRate,
		"total_trades":    float64(m.TotalTrades),
		"avg_win":         m.AvgWin,
		"avg_loss":        m.AvgLoss,
		"win_loss_ratio":  m.WinLossRatio,
		"buy_hold_return": m.BuyHoldReturn,
		"outperformance":  m.Outperformance,
	}
}

// RunRecord describes one persisted backtest run.
type RunRecord struct {
	ID        int64
	Strategy  string
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
	CostRate  float64
	CreatedAt time.Time
}
