package leaderboard

import (
	"github.com/wonny/runboard/internal/contracts"
	"github.com/wonny/runboard/internal/grouping"
	"github.com/wonny/runboard/internal/stats"
)

// Statistic line labels, in block order
const (
	LineTotal       = "Total Distance"
	LineAverage     = "Average Distance"
	LineStdDev      = "Standard Deviation"
	LineMax         = "Maximum Distance"
	LineMin         = "Minimum Distance"
	LineWeeksAbove  = "Weeks Above Threshold"
	LineImprovement = "Last Week Improvement (%)"
)

// RecordBlock builds the statistics block of one record.
// Standard Deviation here is the coefficient of variation (%).
func RecordBlock(rec contracts.Record, threshold float64) contracts.StatsBlock {
	maxObs := stats.MaxDistance(rec)
	minObs := stats.MinDistance(rec)

	return contracts.StatsBlock{
		Kind:    KindIndividual,
		Subject: rec.Identity,
		Lines: []contracts.StatLine{
			{Metric: LineTotal, Value: contracts.Value(stats.TotalDistance(rec))},
			{Metric: LineAverage, Value: contracts.Value(stats.AverageDistance(rec))},
			{Metric: LineStdDev, Value: contracts.Value(stats.CoefficientOfVariation(rec))},
			{Metric: LineMax, Value: contracts.Value(maxObs.Value), Label: maxObs.Label},
			{Metric: LineMin, Value: contracts.Value(minObs.Value), Label: minObs.Label},
			{Metric: LineWeeksAbove, Value: contracts.Value(stats.WeeksAboveThreshold(rec, threshold))},
			{Metric: LineImprovement, Value: contracts.Value(stats.Round2(stats.LastWeekImprovement(rec)))},
		},
	}
}

// GroupBlock builds the statistics block of one bucket over labels.
// Standard Deviation here is the absolute spread of member totals.
func GroupBlock(g grouping.Group, labels []string, threshold float64) contracts.StatsBlock {
	totals := stats.TotalsPerDate(g.Members, labels)
	maxDate := stats.GroupMax(totals)
	minDate := stats.GroupMin(totals)

	return contracts.StatsBlock{
		Kind:    g.Key,
		Subject: g.Value,
		Lines: []contracts.StatLine{
			{Metric: LineTotal, Value: contracts.Value(stats.GroupTotal(g.Members))},
			{Metric: LineAverage, Value: contracts.Value(stats.GroupAverage(g.Members))},
			{Metric: LineStdDev, Value: contracts.Value(stats.GroupStdDev(g.Members))},
			{Metric: LineMax, Value: contracts.Value(maxDate.Value), Label: maxDate.Label},
			{Metric: LineMin, Value: contracts.Value(minDate.Value), Label: minDate.Label},
			{Metric: LineWeeksAbove, Value: contracts.Value(stats.GroupWeeksAboveThreshold(totals, threshold))},
			{Metric: LineImprovement, Value: contracts.Value(stats.Round2(stats.GroupImprovement(totals)))},
		},
	}
}
