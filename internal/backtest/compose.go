package backtest

import (
	"math"

	"quantbt/internal/series"
)

// Composition is the cost-adjusted return stream of one strategy run
// together with its equity curve and the buy-and-hold benchmark.
type Composition struct {
	NetReturns series.Series
	Equity     series.Series
	Benchmark  series.Series
}

// Compose combines positions and market returns into a net return stream.
// Positions are first aligned onto the market-return timestamps with zero
// fill. At each timestamp the gross return is position × market return; a
// flat cost of |Δposition| × costRate is charged whenever the position
// changes, comparing the first position against an implicit flat
// predecessor. The equity curve compounds (1 + net return) from 1.0; the
// benchmark compounds the raw market returns, ignoring positions and costs.
func Compose(positions, marketReturns series.Series, costRate float64) Composition {
	pos := AlignPositions(positions, marketReturns)

	net := make([]float64, marketReturns.Len())
	prev := 0.0
	for i := range net {
		gross := pos.Values[i] * marketReturns.Values[i]
		cost := math.Abs(pos.Values[i]-prev) * costRate
		net[i] = gross - cost
		prev = pos.Values[i]
	}

	netReturns := series.Series{Times: marketReturns.Times, Values: net}
	return Composition{
		NetReturns: netReturns,
		Equity:     netReturns.CumProd(),
		Benchmark:  marketReturns.CumProd(),
	}
}
