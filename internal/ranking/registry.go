package ranking

import (
	"fmt"
	"strings"

	"github.com/wonny/runboard/internal/contracts"
	"github.com/wonny/runboard/internal/stats"
)

// MetricID identifies a per-record metric
type MetricID string

const (
	MetricTotalDistance       MetricID = "total_distance"
	MetricAverageDistance     MetricID = "average_distance"
	MetricStandardDeviation   MetricID = "standard_deviation" // coefficient of variation (%)
	MetricMaxDistance         MetricID = "max_distance"
	MetricMinDistance         MetricID = "min_distance"
	MetricWeeksAboveThreshold MetricID = "weeks_above_threshold"
)

// MetricFunc computes a metric from one record
type MetricFunc func(contracts.Record) float64

// Definition describes a rankable metric
type Definition struct {
	ID           MetricID        `json:"id"`
	Label        string          `json:"label"`
	DefaultOrder contracts.Order `json:"default_order"`
	Compute      MetricFunc      `json:"-"`
}

// ResolveOrder returns the requested order, or the metric's default when empty
func (d Definition) ResolveOrder(requested string) contracts.Order {
	return contracts.ParseOrder(requested, d.DefaultOrder)
}

// Registry maps metric identifiers to definitions
// ⭐ SSOT: 메트릭 이름 → 함수/기본 정렬/표시 라벨 매핑은 여기서만
type Registry struct {
	defs  []Definition
	byKey map[string]Definition
}

// NewRegistry builds the metric registry.
// threshold is the bound used by the weeks-above-threshold metric.
func NewRegistry(threshold float64) *Registry {
	defs := []Definition{
		{
			ID:           MetricTotalDistance,
			Label:        "Total Distance",
			DefaultOrder: contracts.OrderDesc,
			Compute:      stats.TotalDistance,
		},
		{
			ID:           MetricAverageDistance,
			Label:        "Average Distance",
			DefaultOrder: contracts.OrderDesc,
			Compute:      stats.AverageDistance,
		},
		{
			// 변동성이 낮을수록 상위: 유일한 오름차순 기본값
			ID:           MetricStandardDeviation,
			Label:        "Standard Deviation",
			DefaultOrder: contracts.OrderAsc,
			Compute:      stats.CoefficientOfVariation,
		},
		{
			ID:           MetricMaxDistance,
			Label:        "Maximum Distance",
			DefaultOrder: contracts.OrderDesc,
			Compute:      func(r contracts.Record) float64 { return stats.MaxDistance(r).Value },
		},
		{
			ID:           MetricMinDistance,
			Label:        "Minimum Distance",
			DefaultOrder: contracts.OrderDesc,
			Compute:      func(r contracts.Record) float64 { return stats.MinDistance(r).Value },
		},
		{
			ID:           MetricWeeksAboveThreshold,
			Label:        "Weeks Above Threshold",
			DefaultOrder: contracts.OrderDesc,
			Compute: func(r contracts.Record) float64 {
				return float64(stats.WeeksAboveThreshold(r, threshold))
			},
		},
	}

	reg := &Registry{
		defs:  defs,
		byKey: make(map[string]Definition),
	}
	for _, def := range defs {
		reg.byKey[normalizeKey(string(def.ID))] = def
		reg.byKey[normalizeKey(def.Label)] = def
	}

	// Legacy spellings still sent by older dashboards
	aliases := map[string]MetricID{
		"stdev":                  MetricStandardDeviation,
		"coefficientofvariation": MetricStandardDeviation,
		"cv":                     MetricStandardDeviation,
		"weeks":                  MetricWeeksAboveThreshold,
	}
	for alias, id := range aliases {
		reg.byKey[alias] = reg.byKey[normalizeKey(string(id))]
	}

	return reg
}

// Lookup resolves an identifier, display label, or alias.
// Unknown keys fail with ErrInvalidMetricKind.
func (r *Registry) Lookup(key string) (Definition, error) {
	def, ok := r.byKey[normalizeKey(key)]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", contracts.ErrInvalidMetricKind, key)
	}
	return def, nil
}

// Definitions returns all metrics in display order
func (r *Registry) Definitions() []Definition {
	return append([]Definition(nil), r.defs...)
}

// normalizeKey folds case and drops separators: "Total Distance" == "totalDistance" == "total_distance"
func normalizeKey(key string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(key) {
		switch c {
		case ' ', '_', '-':
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
