package builtins

import (
	"math"

	"quantbt/internal/domain"
	"quantbt/internal/series"
	"quantbt/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*MeanReversion)(nil)

// MeanReversion implements a z-score mean-reversion strategy: short when the
// price is more than threshold standard deviations above its rolling mean
// (overbought), long when more than threshold below (oversold), neutral in
// between. A zero or undefined rolling standard deviation makes the z-score
// undefined and the signal neutral.
type MeanReversion struct {
	window    int
	threshold float64
}

// NewMeanReversion creates a MeanReversion strategy with the given rolling
// window and z-score threshold.
func NewMeanReversion(window int, threshold float64) *MeanReversion {
	return &MeanReversion{window: window, threshold: threshold}
}

// Name returns "mean-reversion".
func (m *MeanReversion) Name() string { return "mean-reversion" }

// GenerateSignals computes the rolling z-score of price and thresholds it.
func (m *MeanReversion) GenerateSignals(prices series.Series) (series.Series, strategy.Diagnostics) {
	mean := prices.RollingMean(m.window)
	std := prices.RollingStd(m.window)

	zscores := make([]float64, prices.Len())
	signals := make([]float64, prices.Len())
	for i := range signals {
		sd := std.Values[i]
		if math.IsNaN(sd) || sd == 0 {
			zscores[i] = math.NaN()
			signals[i] = domain.SignalFlat
			continue
		}
		z := (prices.Values[i] - mean.Values[i]) / sd
		zscores[i] = z
		switch {
		case z > m.threshold:
			signals[i] = domain.SignalShort
		case z < -m.threshold:
			signals[i] = domain.SignalLong
		default:
			signals[i] = domain.SignalFlat
		}
	}

	out := series.Series{Times: prices.Times, Values: signals}
	return out, strategy.Diagnostics{
		"zscore":       series.Series{Times: prices.Times, Values: zscores},
		"rolling_mean": mean,
		"rolling_std":  std,
	}
}
