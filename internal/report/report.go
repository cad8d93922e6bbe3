// Package report renders backtest metrics as fixed-width text for the CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"quantbt/internal/backtest"
	"quantbt/internal/domain"
)

const rule = "======================================================================"

// metricRows defines the display order and formatting of the metrics block.
var metricRows = []struct {
	label   string
	percent bool
	value   func(domain.Metrics) float64
}{
	{"Total Return", true, func(m domain.Metrics) float64 { return m.TotalReturn }},
	{"CAGR", true, func(m domain.Metrics) float64 { return m.CAGR }},
	{"Volatility (Annual)", true, func(m domain.Metrics) float64 { return m.Volatility }},
	{"Sharpe Ratio", false, func(m domain.Metrics) float64 { return m.SharpeRatio }},
	{"Max Drawdown", true, func(m domain.Metrics) float64 { return m.MaxDrawdown }},
	{"Calmar Ratio", false, func(m domain.Metrics) float64 { return m.CalmarRatio }},
	{"Win Rate", true, func(m domain.Metrics) float64 { return m.WinRate }},
	{"Avg Win", false, func(m domain.Metrics) float64 { return m.AvgWin }},
	{"Avg Loss", false, func(m domain.Metrics) float64 { return m.AvgLoss }},
	{"Win/Loss Ratio", false, func(m domain.Metrics) float64 { return m.WinLossRatio }},
}

// WriteMetrics renders the full metrics block for one run, in the classic
// dotted-leader layout.
func WriteMetrics(w io.Writer, res *backtest.Result) {
	m := res.Metrics

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "PERFORMANCE METRICS: %s\n", res.Strategy)
	fmt.Fprintln(w, rule)
	for _, row := range metricRows {
		fmt.Fprintln(w, line(row.label, format(row.value(m), row.percent)))
	}
	fmt.Fprintln(w, line("Total Trades", fmt.Sprintf("%d", m.TotalTrades)))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, line("Buy & Hold Return", FormatPercent(m.BuyHoldReturn)))
	fmt.Fprintln(w, line("Outperformance", FormatPercent(m.Outperformance)))
	fmt.Fprintln(w, rule)
}

// WriteComparison renders a side-by-side table of the headline metrics for
// several runs over the same asset.
func WriteComparison(w io.Writer, results []*backtest.Result) {
	if len(results) == 0 {
		return
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "STRATEGY COMPARISON")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-20s %12s %10s %12s %10s\n",
		"Strategy", "Return", "Sharpe", "MaxDD", "Trades")
	for _, res := range results {
		m := res.Metrics
		fmt.Fprintf(w, "%-20s %12s %10s %12s %10d\n",
			res.Strategy,
			FormatPercent(m.TotalReturn),
			FormatRatio(m.SharpeRatio),
			FormatPercent(m.MaxDrawdown),
			m.TotalTrades)
	}
	fmt.Fprintf(w, "%-20s %12s\n", "buy & hold", FormatPercent(results[0].Metrics.BuyHoldReturn))
	fmt.Fprintln(w, rule)
}

// line renders one "Label....... value" row.
func line(label, value string) string {
	const width = 28
	dots := width - len(label)
	if dots < 1 {
		dots = 1
	}
	return label + strings.Repeat(".", dots) + " " + value
}

func format(v float64, percent bool) string {
	if percent {
		return FormatPercent(v)
	}
	return FormatRatio(v)
}

// FormatPercent renders a fraction as a signed percentage with two decimals.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatRatio renders a ratio-style metric with three decimals.
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
