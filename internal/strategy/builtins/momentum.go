package builtins

import (
	"quantbt/internal/domain"
	"quantbt/internal/series"
	"quantbt/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*Momentum)(nil)

// Momentum implements a momentum strategy: long when the fractional price
// change over the lookback period is positive, short otherwise. Unlike the
// other builtins this strategy has no neutral state: exactly-zero momentum
// and the not-yet-defined warm-up period both map to short.
type Momentum struct {
	lookback int
}

// NewMomentum creates a Momentum strategy with the given lookback period.
func NewMomentum(lookback int) *Momentum {
	return &Momentum{lookback: lookback}
}

// Name returns "momentum".
func (m *Momentum) Name() string { return "momentum" }

// GenerateSignals thresholds the lookback percentage change at zero.
func (m *Momentum) GenerateSignals(prices series.Series) (series.Series, strategy.Diagnostics) {
	mom := prices.PctChange(m.lookback)

	signals := make([]float64, prices.Len())
	for i, v := range mom.Values {
		// NaN > 0 is false, so warm-up periods fall through to short.
		if v > 0 {
			signals[i] = domain.SignalLong
		} else {
			signals[i] = domain.SignalShort
		}
	}

	out := series.Series{Times: prices.Times, Values: signals}
	return out, strategy.Diagnostics{
		"momentum": mom,
	}
}
