// Package ranking orders entities by a metric and assigns dense 1-based ranks.
package ranking

import (
	"math"
	"sort"

	"github.com/wonny/runboard/internal/contracts"
	"github.com/wonny/runboard/internal/grouping"
	"github.com/wonny/runboard/internal/stats"
)

// scored is an entity identity paired with its metric value
type scored struct {
	identity    string
	value       float64
	improvement *contracts.Value
}

// Rank computes metric for each entity, stable-sorts by order and assigns
// rank = position + 1. Ties keep their input order and never share a rank.
// NaN values sort after every number in either direction.
func Rank[T any](entities []T, identity func(T) string, metric func(T) float64, order contracts.Order) []contracts.RankedEntry {
	items := make([]scored, len(entities))
	for i, e := range entities {
		items[i] = scored{identity: identity(e), value: metric(e)}
	}
	return assign(items, order)
}

// RankRecords ranks records by a per-record metric
func RankRecords(records []contracts.Record, metric MetricFunc, order contracts.Order) []contracts.RankedEntry {
	return Rank(records, recordIdentity, metric, order)
}

// RankCategories ranks the distinct values of key. A value's metric is the sum of
// the per-record metric over its members; its improvement is the group improvement
// of the bucket's per-date totals over labels.
func RankCategories(records []contracts.Record, labels []string, key string, metric MetricFunc, order contracts.Order) []contracts.RankedEntry {
	groups := grouping.ByCategory(records, key).Groups()

	items := make([]scored, len(groups))
	for i, g := range groups {
		improvement := contracts.Value(stats.GroupImprovement(stats.TotalsPerDate(g.Members, labels)))
		items[i] = scored{
			identity:    g.Value,
			value:       sumMetric(g.Members, metric),
			improvement: &improvement,
		}
	}

	return assign(items, order)
}

// RankWithinCategory partitions records by key and ranks every bucket on its own.
// Ranks restart at 1 in each board; boards follow first-appearance order.
func RankWithinCategory(records []contracts.Record, key string, metric MetricFunc, order contracts.Order) []contracts.Board {
	groups := grouping.ByCategory(records, key).Groups()

	boards := make([]contracts.Board, len(groups))
	for i, g := range groups {
		boards[i] = contracts.Board{
			Category: key,
			Value:    g.Value,
			Entries:  RankRecords(g.Members, metric, order),
		}
	}
	return boards
}

// sumMetric adds the metric over members, skipping NaN members.
// All-NaN (or empty) buckets yield NaN / 0 respectively.
func sumMetric(members []contracts.Record, metric MetricFunc) float64 {
	if len(members) == 0 {
		return 0
	}

	sum := 0.0
	counted := 0
	for _, rec := range members {
		v := metric(rec)
		if math.IsNaN(v) {
			continue
		}
		sum += v
		counted++
	}

	if counted == 0 {
		return math.NaN()
	}
	return stats.Round2(sum)
}

// assign sorts items and converts them to ranked entries
func assign(items []scored, order contracts.Order) []contracts.RankedEntry {
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i].value, items[j].value, order)
	})

	ranked := make([]contracts.RankedEntry, len(items))
	for i, item := range items {
		ranked[i] = contracts.RankedEntry{
			Identity:    item.identity,
			Value:       contracts.Value(item.value),
			Rank:        i + 1,
			Improvement: item.improvement,
		}
	}
	return ranked
}

func less(a, b float64, order contracts.Order) bool {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	if aNaN || bNaN {
		return !aNaN && bNaN
	}
	if order == contracts.OrderAsc {
		return a < b
	}
	return a > b
}

func recordIdentity(r contracts.Record) string {
	return r.Identity
}
