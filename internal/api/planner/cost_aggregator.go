package planner

import (
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type bucket int

const (
	bucketActivities bucket = iota
	bucketAccommodation
	bucketTransport
)

// classify assigns an activity to a cost bucket by which fields it carries.
// A visit line (one that references a POI) is always an activity charge: its
// accommodation and transport fields describe lodging and how the traveler gets
// there, not separate charges.
func classify(a types.Activity) bucket {
	if a.IsVisit() {
		return bucketActivities
	}
	if a.AccommodationID != nil && *a.AccommodationID != "" {
		return bucketAccommodation
	}
	if mode := strings.TrimSpace(a.TransportMode); mode != "" && !strings.EqualFold(mode, types.DefaultTransportMode) {
		return bucketTransport
	}
	return bucketActivities
}

// Aggregate derives a cost breakdown from a daily plan. A bucket that sums to
// zero keeps the value from existing, and the total is always the sum of the
// three buckets. Aggregate(p, Aggregate(p, e)) == Aggregate(p, e).
func Aggregate(plan []types.DailyPlanEntry, existing types.CostBreakdown) types.CostBreakdown {
	var sums [3]float64
	for _, day := range plan {
		for _, a := range day.Activities {
			if a.EstimatedCost <= 0 {
				continue
			}
			sums[classify(a)] += a.EstimatedCost
		}
	}

	out := types.CostBreakdown{
		Transport:     sums[bucketTransport],
		Accommodation: sums[bucketAccommodation],
		Activities:    sums[bucketActivities],
		Currency:      existing.Currency,
	}
	if out.Transport == 0 {
		out.Transport = existing.Transport
	}
	if out.Accommodation == 0 {
		out.Accommodation = existing.Accommodation
	}
	if out.Activities == 0 {
		out.Activities = existing.Activities
	}
	out.Total = out.Transport + out.Accommodation + out.Activities
	if out.Currency == "" {
		out.Currency = types.DefaultCurrency
	}
	return out
}
