// Package stats computes per-record metrics and their group-level analogues.
// Every function is pure and total: division by zero yields the documented
// sentinel instead of an error.
package stats

import (
	"iter"
	"math"

	"github.com/wonny/runboard/internal/contracts"
)

// Extremum is an observation selected by value
type Extremum struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// noExtremum is returned when no observation qualifies
var noExtremum = Extremum{Label: contracts.NotAvailable, Value: 0}

// Improvement is the percent change into one observation from the previous one
type Improvement struct {
	Label   string  `json:"label"`
	Percent float64 `json:"improvement"`
}

// TotalDistance returns the sum of all observations, rounded to 2dp
func TotalDistance(r contracts.Record) float64 {
	sum := 0.0
	for _, obs := range r.Observations {
		sum += obs.Value
	}
	return Round2(sum)
}

// WeeksWithObservations counts observations with a positive value
func WeeksWithObservations(r contracts.Record) int {
	count := 0
	for _, obs := range r.Observations {
		if obs.Value > 0 {
			count++
		}
	}
	return count
}

// AverageDistance divides the total by the number of positive weeks
// 양수 주차가 없으면 0
func AverageDistance(r contracts.Record) float64 {
	weeks := WeeksWithObservations(r)
	if weeks == 0 {
		return 0
	}
	return Round2(TotalDistance(r) / float64(weeks))
}

// CoefficientOfVariation returns the population standard deviation of every
// observation (zero weeks included) around AverageDistance, as a percentage of it.
// Returns NaN when the average is 0.
func CoefficientOfVariation(r contracts.Record) float64 {
	mean := AverageDistance(r)
	if mean == 0 {
		return math.NaN()
	}

	values := r.Values()
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))

	return Round2(math.Sqrt(variance) / mean * 100)
}

// MaxDistance returns the greatest observation; ties keep the earliest
func MaxDistance(r contracts.Record) Extremum {
	if len(r.Observations) == 0 {
		return noExtremum
	}

	best := Extremum{Label: r.Observations[0].Label, Value: r.Observations[0].Value}
	for _, obs := range r.Observations[1:] {
		if obs.Value > best.Value {
			best = Extremum{Label: obs.Label, Value: obs.Value}
		}
	}
	return best
}

// MinDistance returns the smallest observation strictly greater than 0
// 양수 관측이 없으면 {N/A, 0}
func MinDistance(r contracts.Record) Extremum {
	best := noExtremum
	found := false
	for _, obs := range r.Observations {
		if obs.Value <= 0 {
			continue
		}
		if !found || obs.Value < best.Value {
			best = Extremum{Label: obs.Label, Value: obs.Value}
			found = true
		}
	}
	return best
}

// WeeksAboveThreshold counts observations >= threshold
func WeeksAboveThreshold(r contracts.Record, threshold float64) int {
	count := 0
	for _, obs := range r.Observations {
		if obs.Value >= threshold {
			count++
		}
	}
	return count
}

// LastWeekImprovement returns the percent change between the final two observations
func LastWeekImprovement(r contracts.Record) float64 {
	n := len(r.Observations)
	if n < 2 {
		return 0
	}
	return percentChange(r.Observations[n-2].Value, r.Observations[n-1].Value)
}

// WeeklyImprovement yields the percent change for every consecutive pair,
// labelled with the later observation. The sequence can be ranged over repeatedly.
func WeeklyImprovement(r contracts.Record) iter.Seq[Improvement] {
	return func(yield func(Improvement) bool) {
		for i := 1; i < len(r.Observations); i++ {
			prev, curr := r.Observations[i-1], r.Observations[i]
			if !yield(Improvement{Label: curr.Label, Percent: percentChange(prev.Value, curr.Value)}) {
				return
			}
		}
	}
}
