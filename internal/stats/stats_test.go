package stats

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %f, want 0", got)
	}
	if got := Mean([]float64{2, 4, 6}); !almostEqual(got, 4) {
		t.Errorf("Mean([2,4,6]) = %f, want 4", got)
	}
}

func TestVarianceAndStdDev(t *testing.T) {
	// Population variance of [2,4,6] is 8/3.
	if got := Variance([]float64{2, 4, 6}); !almostEqual(got, 8.0/3.0) {
		t.Errorf("Variance([2,4,6]) = %f, want %f", got, 8.0/3.0)
	}
	if got := StdDev([]float64{5, 5, 5}); !almostEqual(got, 0) {
		t.Errorf("StdDev([5,5,5]) = %f, want 0", got)
	}
	if got := Variance(nil); got != 0 {
		t.Errorf("Variance(nil) = %f, want 0", got)
	}
}

func TestConsistency(t *testing.T) {
	if got := Consistency(nil); got != 0 {
		t.Errorf("Consistency([]) = %f, want 0", got)
	}
	if got := Consistency([]float64{7}); got != 0 {
		t.Errorf("Consistency([x]) = %f, want 0", got)
	}
	// Zero variance means maximal consistency.
	if got := Consistency([]float64{5, 5, 5}); !almostEqual(got, 1) {
		t.Errorf("Consistency([5,5,5]) = %f, want 1", got)
	}
	// Non-positive mean yields 0.
	if got := Consistency([]float64{-1, -2, -3}); got != 0 {
		t.Errorf("Consistency(negative) = %f, want 0", got)
	}
	// Wildly unstable sequences floor at 0.
	if got := Consistency([]float64{1, 1000, 1, 1000}); got < 0 {
		t.Errorf("Consistency(unstable) = %f, want >= 0", got)
	}
}

func TestVolatility(t *testing.T) {
	// Fewer than 2 valid returns yields 0.
	if got := Volatility([]float64{1.0, 1.1}); got != 0 {
		t.Errorf("Volatility(1 return) = %f, want 0", got)
	}
	// Zero previous prices produce no return at all.
	if got := Volatility([]float64{0, 0, 0, 0}); got != 0 {
		t.Errorf("Volatility(zero prices) = %f, want 0", got)
	}
	// Constant returns have zero spread.
	if got := Volatility([]float64{1, 2, 4, 8}); !almostEqual(got, 0) {
		t.Errorf("Volatility(constant return) = %f, want 0", got)
	}
	// Alternating +100%/-50% returns: stddev of [1,-0.5,1] * 100.
	got := Volatility([]float64{1, 2, 1, 2})
	want := StdDev([]float64{1, -0.5, 1}) * 100
	if !almostEqual(got, want) {
		t.Errorf("Volatility = %f, want %f", got, want)
	}
}

func TestLinearTrendSlope(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"ascending unit steps", []float64{1, 2, 3, 4}, 1},
		{"descending unit steps", []float64{4, 3, 2, 1}, -1},
		{"single point", []float64{5}, 0},
		{"empty", nil, 0},
		{"flat", []float64{3, 3, 3}, 0},
		{"two points", []float64{0, 10}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearTrendSlope(tt.values); !almostEqual(got, tt.want) {
				t.Errorf("LinearTrendSlope(%v) = %f, want %f", tt.values, got, tt.want)
			}
		})
	}
}

func TestPercentChange(t *testing.T) {
	if got := PercentChange(150, 100); !almostEqual(got, 50) {
		t.Errorf("PercentChange(150,100) = %f, want 50", got)
	}
	if got := PercentChange(42, 0); got != 0 {
		t.Errorf("PercentChange(x,0) = %f, want 0", got)
	}
	if got := PercentChange(50, 100); !almostEqual(got, -50) {
		t.Errorf("PercentChange(50,100) = %f, want -50", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(120, 0, 100); got != 100 {
		t.Errorf("Clamp(120,0,100) = %f, want 100", got)
	}
	if got := Clamp(-5, 0, 100); got != 0 {
		t.Errorf("Clamp(-5,0,100) = %f, want 0", got)
	}
	if got := Clamp(42, 0, 100); got != 42 {
		t.Errorf("Clamp(42,0,100) = %f, want 42", got)
	}
}
