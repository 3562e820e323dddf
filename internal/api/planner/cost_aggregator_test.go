package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func TestAggregate(t *testing.T) {
	t.Run("bus line is transport", func(t *testing.T) {
		plan := []types.DailyPlanEntry{{Activities: []types.Activity{{EstimatedCost: 100, TransportMode: "bus"}}}}

		got := Aggregate(plan, types.CostBreakdown{})
		assert.Equal(t, types.CostBreakdown{Transport: 100, Accommodation: 0, Activities: 0, Total: 100, Currency: "INR"}, got)
	})

	t.Run("classification precedence", func(t *testing.T) {
		plan := []types.DailyPlanEntry{
			{Activities: []types.Activity{
				{AccommodationID: strPtr("hotel"), TransportMode: "taxi", EstimatedCost: 2500},
				{TransportMode: "train", EstimatedCost: 400},
				{TransportMode: "walk", EstimatedCost: 30},
				{PoiID: strPtr("fort"), AccommodationID: strPtr("hotel"), TransportMode: "bus", EstimatedCost: 50},
			}},
			{Activities: []types.Activity{
				{Notes: "street food", EstimatedCost: 120},
				{AccommodationID: strPtr(""), EstimatedCost: 10},
			}},
		}

		got := Aggregate(plan, types.CostBreakdown{Currency: "EUR"})
		assert.Equal(t, 2500.0, got.Accommodation)
		assert.Equal(t, 400.0, got.Transport)
		assert.Equal(t, 210.0, got.Activities)
		assert.Equal(t, 3110.0, got.Total)
		assert.Equal(t, "EUR", got.Currency)
	})

	t.Run("zero buckets fall back to existing", func(t *testing.T) {
		plan := []types.DailyPlanEntry{{Activities: []types.Activity{{PoiID: strPtr("fort"), EstimatedCost: 80}}}}
		existing := types.CostBreakdown{Transport: 1000, Accommodation: 6000, Activities: 5, Total: 1, Currency: "INR"}

		got := Aggregate(plan, existing)
		assert.Equal(t, types.CostBreakdown{Transport: 1000, Accommodation: 6000, Activities: 80, Total: 7080, Currency: "INR"}, got)
	})

	t.Run("empty plan keeps existing buckets and re-derives total", func(t *testing.T) {
		got := Aggregate(nil, types.CostBreakdown{Transport: 10, Accommodation: 20, Activities: 30, Total: 999})
		assert.Equal(t, 60.0, got.Total)
	})
}

func TestAggregate_Idempotent(t *testing.T) {
	plans := [][]types.DailyPlanEntry{
		nil,
		{{Activities: []types.Activity{{EstimatedCost: 100, TransportMode: "bus"}}}},
		{{Activities: []types.Activity{
			{PoiID: strPtr("a"), AccommodationID: strPtr("h"), EstimatedCost: 120},
			{AccommodationID: strPtr("h"), EstimatedCost: 3000},
			{TransportMode: "ferry", EstimatedCost: 0},
		}}},
	}
	existing := []types.CostBreakdown{
		{},
		{Transport: 1000, Accommodation: 2000, Activities: 300, Total: 1, Currency: "USD"},
	}

	for _, plan := range plans {
		for _, e := range existing {
			once := Aggregate(plan, e)
			assert.Equal(t, once, Aggregate(plan, once))
		}
	}
}
