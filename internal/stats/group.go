package stats

import (
	"math"

	"github.com/wonny/runboard/internal/contracts"
)

// DateTotal is the bucket-wide sum of one observation label
type DateTotal struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// TotalsPerDate sums each label's observation over the bucket, aligned to labels
func TotalsPerDate(bucket []contracts.Record, labels []string) []DateTotal {
	totals := make([]DateTotal, len(labels))
	for i, label := range labels {
		sum := 0.0
		for _, rec := range bucket {
			sum += rec.ValueAt(label)
		}
		totals[i] = DateTotal{Label: label, Total: sum}
	}
	return totals
}

// GroupTotal sums TotalDistance over the bucket
func GroupTotal(bucket []contracts.Record) float64 {
	sum := 0.0
	for _, rec := range bucket {
		sum += TotalDistance(rec)
	}
	return Round2(sum)
}

// GroupAverage divides GroupTotal by the member count (not by weeks)
func GroupAverage(bucket []contracts.Record) float64 {
	if len(bucket) == 0 {
		return 0
	}
	return Round2(GroupTotal(bucket) / float64(len(bucket)))
}

// GroupStdDev is the absolute population standard deviation of member totals
// around GroupAverage. Unlike CoefficientOfVariation it is not relative.
func GroupStdDev(bucket []contracts.Record) float64 {
	if len(bucket) == 0 {
		return 0
	}

	avg := GroupAverage(bucket)
	variance := 0.0
	for _, rec := range bucket {
		diff := TotalDistance(rec) - avg
		variance += diff * diff
	}
	variance /= float64(len(bucket))

	return Round2(math.Sqrt(variance))
}

// GroupMax returns the greatest per-date total; ties keep the earliest
func GroupMax(totals []DateTotal) Extremum {
	if len(totals) == 0 {
		return noExtremum
	}
	best := totals[0]
	for _, t := range totals[1:] {
		if t.Total > best.Total {
			best = t
		}
	}
	return Extremum{Label: best.Label, Value: best.Total}
}

// GroupMin returns the smallest per-date total, zero totals included
func GroupMin(totals []DateTotal) Extremum {
	if len(totals) == 0 {
		return noExtremum
	}
	best := totals[0]
	for _, t := range totals[1:] {
		if t.Total < best.Total {
			best = t
		}
	}
	return Extremum{Label: best.Label, Value: best.Total}
}

// GroupWeeksAboveThreshold counts per-date totals >= threshold
func GroupWeeksAboveThreshold(totals []DateTotal, threshold float64) int {
	count := 0
	for _, t := range totals {
		if t.Total >= threshold {
			count++
		}
	}
	return count
}

// GroupImprovement returns the percent change between the last two per-date totals
func GroupImprovement(totals []DateTotal) float64 {
	n := len(totals)
	if n < 2 {
		return 0
	}
	return percentChange(totals[n-2].Total, totals[n-1].Total)
}
