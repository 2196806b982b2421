package stats

import "math"

// Round2 rounds to two decimal places; NaN passes through
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percentChange returns (curr-prev)/prev*100, or 0 when prev is zero
func percentChange(prev, curr float64) float64 {
	if prev == 0 || math.IsNaN(prev) {
		return 0
	}
	return (curr - prev) / prev * 100
}
