package ranking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/runboard/internal/contracts"
)

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry(10)

	tests := []struct {
		key  string
		want MetricID
	}{
		{"total_distance", MetricTotalDistance},
		{"totalDistance", MetricTotalDistance},
		{"Total Distance", MetricTotalDistance},
		{"average_distance", MetricAverageDistance},
		{"standardDeviation", MetricStandardDeviation},
		{"STDEV", MetricStandardDeviation},
		{"Max Distance", MetricMaxDistance},
		{"Maximum Distance", MetricMaxDistance},
		{"minDistance", MetricMinDistance},
		{"weeks", MetricWeeksAboveThreshold},
		{"Weeks Above Threshold", MetricWeeksAboveThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			def, err := reg.Lookup(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.ID)
			assert.NotNil(t, def.Compute)
		})
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	reg := NewRegistry(10)

	_, err := reg.Lookup("fastest_lap")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrInvalidMetricKind))
	assert.Contains(t, err.Error(), "fastest_lap")

	_, err = reg.Lookup("")
	assert.ErrorIs(t, err, contracts.ErrInvalidMetricKind)
}

func TestRegistry_DefaultOrders(t *testing.T) {
	reg := NewRegistry(10)

	for _, def := range reg.Definitions() {
		want := contracts.OrderDesc
		if def.ID == MetricStandardDeviation {
			want = contracts.OrderAsc
		}
		assert.Equal(t, want, def.DefaultOrder, "metric %s", def.ID)
	}
	assert.Len(t, reg.Definitions(), 6)
}

func TestRegistry_ThresholdBinding(t *testing.T) {
	r := record("a", "x", 10, 9, 12)

	def, err := NewRegistry(10).Lookup("weeks_above_threshold")
	require.NoError(t, err)
	assert.Equal(t, 2.0, def.Compute(r))

	def, err = NewRegistry(5).Lookup("weeks_above_threshold")
	require.NoError(t, err)
	assert.Equal(t, 3.0, def.Compute(r))
}

func TestDefinition_ResolveOrder(t *testing.T) {
	def := Definition{DefaultOrder: contracts.OrderAsc}
	assert.Equal(t, contracts.OrderAsc, def.ResolveOrder(""))
	assert.Equal(t, contracts.OrderDesc, def.ResolveOrder("desc"))
	assert.Equal(t, contracts.OrderAsc, def.ResolveOrder("ASC"))
	assert.Equal(t, contracts.OrderDesc, def.ResolveOrder("sideways"))
}
