package planner

import "github.com/FACorreiaa/go-trip-planner/internal/types"

// Style thresholds, in the catalog's currency.
const (
	BudgetMaxNightlyCost = 3000.0
	BudgetMaxVisitCost   = 500.0
	LuxuryMinNightlyCost = 5000.0
)

// FilterAccommodations returns the accommodations allowed for style, in catalog order.
func FilterAccommodations(style types.TravelStyle, accommodations []types.Accommodation) []types.Accommodation {
	out := make([]types.Accommodation, 0, len(accommodations))
	for _, a := range accommodations {
		switch style {
		case types.TravelStyleBudget:
			if a.CostPerNight > BudgetMaxNightlyCost {
				continue
			}
		case types.TravelStyleLuxury:
			if a.CostPerNight < LuxuryMinNightlyCost {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// FilterPOIs returns the POIs allowed for style, in catalog order.
// Only budget trips drop POIs: anything whose first listed visit cost exceeds the cap.
func FilterPOIs(style types.TravelStyle, pois []types.POI) []types.POI {
	out := make([]types.POI, 0, len(pois))
	for _, p := range pois {
		if style == types.TravelStyleBudget && p.VisitCost() > BudgetMaxVisitCost {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterCatalog applies the style rules to a deep copy of the catalog.
func FilterCatalog(style types.TravelStyle, catalog types.Catalog) types.Catalog {
	out := catalog.Clone()
	out.POIs = FilterPOIs(style, out.POIs)
	out.Accommodations = FilterAccommodations(style, out.Accommodations)
	out.DayRecords = filterDayRecords(catalog, out)
	return out
}

// filterDayRecords removes record visits to POIs the style filter dropped. A
// record staying at a dropped accommodation moves to the cheapest allowed one,
// or loses its stay when none is left. References to ids the catalog does not
// list are kept.
func filterDayRecords(all, allowed types.Catalog) []types.DayRecord {
	droppedPOIs := make(map[string]struct{})
	keptPOIs := make(map[string]struct{}, len(allowed.POIs))
	for _, p := range allowed.POIs {
		keptPOIs[p.ID] = struct{}{}
	}
	for _, p := range all.POIs {
		if _, ok := keptPOIs[p.ID]; !ok {
			droppedPOIs[p.ID] = struct{}{}
		}
	}

	droppedStays := make(map[string]struct{})
	keptStays := make(map[string]struct{}, len(allowed.Accommodations))
	var cheapest *types.Accommodation
	for i, a := range allowed.Accommodations {
		keptStays[a.ID] = struct{}{}
		if cheapest == nil || a.CostPerNight < cheapest.CostPerNight {
			cheapest = &allowed.Accommodations[i]
		}
	}
	for _, a := range all.Accommodations {
		if _, ok := keptStays[a.ID]; !ok {
			droppedStays[a.ID] = struct{}{}
		}
	}

	out := make([]types.DayRecord, 0, len(allowed.DayRecords))
	for _, rec := range allowed.DayRecords {
		activities := make([]types.DayActivity, 0, len(rec.Activities))
		for _, a := range rec.Activities {
			if _, dropped := droppedPOIs[a.PoiID]; dropped {
				continue
			}
			activities = append(activities, a)
		}
		rec.Activities = activities

		if _, dropped := droppedStays[rec.AccommodationID]; dropped {
			if cheapest != nil {
				rec.AccommodationID = cheapest.ID
				rec.AccommodationCost = cheapest.CostPerNight
			} else {
				rec.AccommodationID = ""
				rec.AccommodationCost = 0
			}
		}
		out = append(out, rec)
	}
	return out
}
