// Package builtins provides the built-in signal-generation strategies that
// ship with quantbt.
package builtins

import (
	"math"

	"quantbt/internal/domain"
	"quantbt/internal/series"
	"quantbt/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*Crossover)(nil)

// Crossover implements a moving-average crossover strategy: long while the
// fast rolling mean is above the slow one, short otherwise. While either
// rolling mean is still undefined the signal is neutral.
type Crossover struct {
	fast int
	slow int
}

// NewCrossover creates a Crossover strategy with the given fast and slow
// moving-average windows.
func NewCrossover(fast, slow int) *Crossover {
	return &Crossover{fast: fast, slow: slow}
}

// Name returns "crossover".
func (c *Crossover) Name() string { return "crossover" }

// GenerateSignals compares the fast and slow rolling means at every
// timestamp. A strict tie counts as short.
func (c *Crossover) GenerateSignals(prices series.Series) (series.Series, strategy.Diagnostics) {
	fastMA := prices.RollingMean(c.fast)
	slowMA := prices.RollingMean(c.slow)

	signals := make([]float64, prices.Len())
	for i := range signals {
		f, s := fastMA.Values[i], slowMA.Values[i]
		switch {
		case math.IsNaN(f) || math.IsNaN(s):
			signals[i] = domain.SignalFlat
		case f > s:
			signals[i] = domain.SignalLong
		default:
			signals[i] = domain.SignalShort
		}
	}

	out := series.Series{Times: prices.Times, Values: signals}
	return out, strategy.Diagnostics{
		"ma_fast": fastMA,
		"ma_slow": slowMA,
	}
}
