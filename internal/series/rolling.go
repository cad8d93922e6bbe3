package series

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RollingMean computes the mean over a trailing window of w observations.
// Entries with fewer than w observations of history are NaN.
func (s Series) RollingMean(w int) Series {
	values := make([]float64, s.Len())
	for i := range values {
		if i < w-1 {
			values[i] = math.NaN()
			continue
		}
		values[i] = stat.Mean(s.Values[i-w+1:i+1], nil)
	}
	return s.withValues(values)
}

// RollingStd computes the sample standard deviation over a trailing window
// of w observations. Entries with fewer than w observations are NaN, as is
// any window of size 1.
func (s Series) RollingStd(w int) Series {
	values := make([]float64, s.Len())
	for i := range values {
		if i < w-1 || w < 2 {
			values[i] = math.NaN()
			continue
		}
		values[i] = stat.StdDev(s.Values[i-w+1:i+1], nil)
	}
	return s.withValues(values)
}
