// Package series implements the time-indexed float64 series the backtest
// pipeline is built on: percentage changes, rolling statistics, shifting,
// re-indexing, and cumulative compounding. Undefined values (insufficient
// history, degenerate statistics) are represented as NaN and never dropped,
// so every derived series keeps the timestamp domain of its input unless
// documented otherwise.
package series

import (
	"errors"
	"math"
	"time"

	"quantbt/internal/domain"
)

// ErrLengthMismatch is returned when timestamps and values differ in length.
var ErrLengthMismatch = errors.New("series: timestamps and values length mismatch")

// Series is an ordered sequence of (timestamp, value) pairs with strictly
// increasing timestamps. Values may be NaN where undefined. A Series is
// treated as immutable once constructed; operations return new series.
type Series struct {
	Times  []time.Time
	Values []float64
}

// New constructs a Series from parallel timestamp and value slices.
func New(times []time.Time, values []float64) (Series, error) {
	if len(times) != len(values) {
		return Series{}, ErrLengthMismatch
	}
	return Series{Times: times, Values: values}, nil
}

// FromBars builds a close-price series from daily bars. Bars must already be
// sorted by timestamp.
func FromBars(bars []domain.Bar) Series {
	times := make([]time.Time, len(bars))
	values := make([]float64, len(bars))
	for i, b := range bars {
		times[i] = b.Timestamp
		values[i] = b.Close
	}
	return Series{Times: times, Values: values}
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.Values) }

// IsEmpty reports whether the series has no observations.
func (s Series) IsEmpty() bool { return len(s.Values) == 0 }

// Last returns the final value. It panics on an empty series.
func (s Series) Last() float64 { return s.Values[len(s.Values)-1] }

// withValues returns a series sharing s's timestamps with new values.
func (s Series) withValues(values []float64) Series {
	return Series{Times: s.Times, Values: values}
}

// Returns computes simple fractional returns: r[t] = v[t]/v[t-1] - 1. The
// result is one observation shorter than the input, indexed from the second
// timestamp onward.
func (s Series) Returns() Series {
	if s.Len() < 2 {
		return Series{}
	}
	times := make([]time.Time, s.Len()-1)
	values := make([]float64, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		times[i-1] = s.Times[i]
		values[i-1] = s.Values[i]/s.Values[i-1] - 1
	}
	return Series{Times: times, Values: values}
}

// PctChange computes the fractional change over n periods on the full
// timestamp domain: v[t]/v[t-n] - 1, NaN for the first n observations.
func (s Series) PctChange(n int) Series {
	values := make([]float64, s.Len())
	for i := range values {
		if i < n {
			values[i] = math.NaN()
			continue
		}
		values[i] = s.Values[i]/s.Values[i-n] - 1
	}
	return s.withValues(values)
}

// Shift moves every value forward by one period. The first entry of the
// result is NaN (no predecessor exists).
func (s Series) Shift() Series {
	values := make([]float64, s.Len())
	for i := range values {
		if i == 0 {
			values[i] = math.NaN()
			continue
		}
		values[i] = s.Values[i-1]
	}
	return s.withValues(values)
}

// Reindex projects the series onto the given timestamp set. Timestamps
// without a matching observation (including NaN observations) get fill.
func (s Series) Reindex(times []time.Time, fill float64) Series {
	byTime := make(map[int64]float64, s.Len())
	for i, t := range s.Times {
		byTime[t.UnixNano()] = s.Values[i]
	}
	values := make([]float64, len(times))
	for i, t := range times {
		v, ok := byTime[t.UnixNano()]
		if !ok || math.IsNaN(v) {
			v = fill
		}
		values[i] = v
	}
	return Series{Times: times, Values: values}
}

// CumProd computes the running product of (1 + v[t]), the equity curve of a
// unit investment earning v each period.
func (s Series) CumProd() Series {
	values := make([]float64, s.Len())
	acc := 1.0
	for i, v := range s.Values {
		acc *= 1 + v
		values[i] = acc
	}
	return s.withValues(values)
}

// DropNaN returns the series with all NaN observations removed.
func (s Series) DropNaN() Series {
	times := make([]time.Time, 0, s.Len())
	values := make([]float64, 0, s.Len())
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		times = append(times, s.Times[i])
		values = append(values, v)
	}
	return Series{Times: times, Values: values}
}
