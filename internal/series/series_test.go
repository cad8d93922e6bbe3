package series

import (
	"math"
	"testing"
	"time"
)

// days returns n consecutive daily timestamps starting 2024-01-01.
func days(n int) []time.Time {
	out := make([]time.Time, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = base.AddDate(0, 0, i)
	}
	return out
}

func mustSeries(t *testing.T, values []float64) Series {
	t.Helper()
	s, err := New(days(len(values)), values)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewLengthMismatch(t *testing.T) {
	_, err := New(days(3), []float64{1, 2})
	if err != ErrLengthMismatch {
		t.Errorf("New with mismatched lengths returned %v, want ErrLengthMismatch", err)
	}
}

func TestReturns(t *testing.T) {
	s := mustSeries(t, []float64{100, 110, 99})
	r := s.Returns()

	if r.Len() != 2 {
		t.Fatalf("Returns length = %d, want 2", r.Len())
	}
	if !r.Times[0].Equal(s.Times[1]) {
		t.Errorf("Returns first timestamp = %v, want %v", r.Times[0], s.Times[1])
	}
	if math.Abs(r.Values[0]-0.10) > 1e-12 {
		t.Errorf("Returns[0] = %v, want 0.10", r.Values[0])
	}
	if math.Abs(r.Values[1]-(-0.10)) > 1e-12 {
		t.Errorf("Returns[1] = %v, want -0.10", r.Values[1])
	}
}

func TestReturnsShortInput(t *testing.T) {
	s := mustSeries(t, []float64{100})
	if got := s.Returns().Len(); got != 0 {
		t.Errorf("Returns on single observation has length %d, want 0", got)
	}
}

func TestPctChange(t *testing.T) {
	s := mustSeries(t, []float64{100, 110, 121, 133.1})
	pc := s.PctChange(2)

	if pc.Len() != s.Len() {
		t.Fatalf("PctChange length = %d, want %d", pc.Len(), s.Len())
	}
	if !math.IsNaN(pc.Values[0]) || !math.IsNaN(pc.Values[1]) {
		t.Errorf("PctChange warm-up values = %v, %v, want NaN, NaN", pc.Values[0], pc.Values[1])
	}
	if math.Abs(pc.Values[2]-0.21) > 1e-12 {
		t.Errorf("PctChange[2] = %v, want 0.21", pc.Values[2])
	}
}

func TestShift(t *testing.T) {
	s := mustSeries(t, []float64{1, -1, 0})
	sh := s.Shift()

	if !math.IsNaN(sh.Values[0]) {
		t.Errorf("Shift[0] = %v, want NaN", sh.Values[0])
	}
	if sh.Values[1] != 1 || sh.Values[2] != -1 {
		t.Errorf("Shift values = %v, want [NaN 1 -1]", sh.Values)
	}
}

func TestReindexZeroFill(t *testing.T) {
	s := mustSeries(t, []float64{1, 2, 3})
	target := days(5)
	r := s.Reindex(target[1:], 0)

	// target[1] and target[2] exist in s, target[3] and target[4] do not.
	want := []float64{2, 3, 0, 0}
	for i, w := range want {
		if r.Values[i] != w {
			t.Errorf("Reindex[%d] = %v, want %v", i, r.Values[i], w)
		}
	}
}

func TestReindexFillsNaN(t *testing.T) {
	s := mustSeries(t, []float64{math.NaN(), 2})
	r := s.Reindex(s.Times, 0)
	if r.Values[0] != 0 {
		t.Errorf("Reindex kept NaN, want 0 fill, got %v", r.Values[0])
	}
}

func TestCumProd(t *testing.T) {
	s := mustSeries(t, []float64{0.10, -0.10})
	cp := s.CumProd()

	if math.Abs(cp.Values[0]-1.10) > 1e-12 {
		t.Errorf("CumProd[0] = %v, want 1.10", cp.Values[0])
	}
	if math.Abs(cp.Values[1]-0.99) > 1e-12 {
		t.Errorf("CumProd[1] = %v, want 0.99", cp.Values[1])
	}
}

func TestDropNaN(t *testing.T) {
	s := mustSeries(t, []float64{math.NaN(), 1, math.NaN(), 2})
	d := s.DropNaN()
	if d.Len() != 2 || d.Values[0] != 1 || d.Values[1] != 2 {
		t.Errorf("DropNaN values = %v, want [1 2]", d.Values)
	}
}

func TestRollingMean(t *testing.T) {
	s := mustSeries(t, []float64{1, 2, 3, 4})
	m := s.RollingMean(3)

	if !math.IsNaN(m.Values[0]) || !math.IsNaN(m.Values[1]) {
		t.Errorf("RollingMean warm-up = %v, want NaN for first two", m.Values[:2])
	}
	if math.Abs(m.Values[2]-2) > 1e-12 {
		t.Errorf("RollingMean[2] = %v, want 2", m.Values[2])
	}
	if math.Abs(m.Values[3]-3) > 1e-12 {
		t.Errorf("RollingMean[3] = %v, want 3", m.Values[3])
	}
}

func TestRollingStd(t *testing.T) {
	s := mustSeries(t, []float64{2, 4, 6, 8})
	sd := s.RollingStd(2)

	if !math.IsNaN(sd.Values[0]) {
		t.Errorf("RollingStd[0] = %v, want NaN", sd.Values[0])
	}
	// Sample stddev of {2,4} is sqrt(2).
	if math.Abs(sd.Values[1]-math.Sqrt2) > 1e-12 {
		t.Errorf("RollingStd[1] = %v, want sqrt(2)", sd.Values[1])
	}
}

func TestRollingStdConstantWindow(t *testing.T) {
	s := mustSeries(t, []float64{5, 5, 5, 5})
	sd := s.RollingStd(3)
	if sd.Values[3] != 0 {
		t.Errorf("RollingStd of constant window = %v, want 0", sd.Values[3])
	}
}
