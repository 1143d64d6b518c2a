// Package stats provides the pure statistical primitives shared by the
// aggregation, trend, scoring and cohort packages. All functions are
// stateless, never error, and resolve short or empty inputs to a
// documented neutral value so sparse assets degrade instead of failing.
package stats

import "math"

// Mean calculates the arithmetic mean. Empty input yields 0; callers
// must guard length before using the result in ratio computations.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance calculates the population variance. Empty input yields 0.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(values))
}

// StdDev calculates the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Consistency scores how stable a sequence is as 1 - stddev/mean,
// floored at 0. The result lies in [0,1]; higher means more stable.
// Fewer than 2 values, or a non-positive mean, yields 0.
func Consistency(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	if mean <= 0 {
		return 0
	}
	c := 1 - StdDev(values)/mean
	if c < 0 {
		return 0
	}
	return c
}

// Volatility computes the standard deviation of period-over-period
// simple returns, scaled to percent. Returns are only taken where the
// previous price is positive; fewer than 2 valid returns yields 0.
func Volatility(prices []float64) float64 {
	var returns []float64
	for i := 1; i < len(prices); i++ {
		if prices[i-1] > 0 {
			returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
		}
	}
	if len(returns) < 2 {
		return 0
	}
	return StdDev(returns) * 100
}

// LinearTrendSlope fits an ordinary-least-squares line to values
// against their indices 0..n-1 and returns the slope. Fewer than 2
// points yields 0. The denominator cannot vanish for n >= 2 since x
// is the index sequence.
func LinearTrendSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	fn := float64(n)
	return (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
}

// PercentChange returns the percent change from previous to current.
// A missing or zero previous value yields 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
