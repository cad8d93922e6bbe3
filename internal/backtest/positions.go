// Package backtest implements the quantitative pipeline: signals become
// positions, positions and market returns become a cost-adjusted return
// stream, and the return stream becomes a fixed table of performance
// metrics. Every stage is a pure transformation; running the same strategy
// on the same inputs twice yields identical results.
package backtest

import "quantbt/internal/series"

// Positions converts a signal series into an executable position series by
// shifting every signal forward one period. A signal observed at the close
// of period t is held from period t+1, which removes look-ahead bias. The
// first period has no prior signal and is flat.
func Positions(signals series.Series) series.Series {
	shifted := signals.Shift()
	// The shifted-in NaN at index 0 means "no position", not "undefined".
	if shifted.Len() > 0 {
		shifted.Values[0] = 0
	}
	return shifted
}

// AlignPositions re-indexes positions onto the market-return timestamps.
// Any return timestamp without a matching position is flat.
func AlignPositions(positions series.Series, marketReturns series.Series) series.Series {
	return positions.Reindex(marketReturns.Times, 0)
}
