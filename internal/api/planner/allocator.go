package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	StrategyGreedy     = "greedy"
	StrategyRoundRobin = "round_robin"
)

// POIsPerDay is how many POIs the round-robin strategy places on each day.
const POIsPerDay = 2

// AllocationInput is everything a strategy needs. Catalog is expected to be
// already filtered for the travel style; strategies never modify it.
type AllocationInput struct {
	Catalog   types.Catalog
	StartDate types.Date
	TotalDays int
	Budget    float64
	Interests []string
	Style     types.TravelStyle
}

// Overrun reports a greedy day whose fixed lines pushed spending past the
// budget remaining before that day.
type Overrun struct {
	Day             int        `json:"day"`
	Date            types.Date `json:"date"`
	DayCost         float64    `json:"day_cost"`
	RemainingBefore float64    `json:"remaining_before"`
}

type Allocation struct {
	Strategy      string                 `json:"strategy"`
	Days          []types.DailyPlanEntry `json:"daily_plan"`
	CostBreakdown types.CostBreakdown    `json:"cost_breakdown"`
	Overruns      []Overrun              `json:"overruns,omitempty"`
}

// Strategy turns a filtered catalog into a day-by-day plan. Implementations are
// pure: no I/O and no mutation of the input.
type Strategy interface {
	Name() string
	Allocate(in AllocationInput) Allocation
}

// Options carries the configurable constants of the strategies.
type Options struct {
	Currency                 string
	DailyTransportMode       string
	DailyTransportCost       float64
	TripTransportPlaceholder float64
}

func DefaultOptions() Options {
	return Options{
		Currency:                 types.DefaultCurrency,
		DailyTransportMode:       "local_transit",
		DailyTransportCost:       200,
		TripTransportPlaceholder: 1000,
	}
}

// Strategies holds the selectable strategies keyed by name.
type Strategies map[string]Strategy

func NewStrategies(opts Options) Strategies {
	if opts.Currency == "" {
		opts.Currency = types.DefaultCurrency
	}
	greedy := &GreedyStrategy{opts: opts}
	rr := &RoundRobinStrategy{opts: opts}
	return Strategies{
		greedy.Name(): greedy,
		rr.Name():     rr,
	}
}

// Get returns the named strategy; an empty name selects fallback.
func (s Strategies) Get(name, fallback string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = fallback
	}
	strategy, ok := s[name]
	if !ok {
		return nil, types.InvalidRequest(types.ReasonBadPlan, "unknown allocation strategy %q", name)
	}
	return strategy, nil
}

// Names lists the registered strategy names in sorted order.
func (s Strategies) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run filters the catalog for the request's style, allocates with strategy and
// reconciles the strategy's breakdown through Aggregate.
func Run(strategy Strategy, catalog types.Catalog, req types.TripRequest) Allocation {
	alloc := strategy.Allocate(AllocationInput{
		Catalog:   FilterCatalog(req.TravelStyle, catalog),
		StartDate: req.StartDate,
		TotalDays: req.TotalDays,
		Budget:    req.Budget,
		Interests: req.Interests,
		Style:     req.TravelStyle,
	})
	alloc.CostBreakdown = Aggregate(alloc.Days, alloc.CostBreakdown)
	return alloc
}

// GreedyStrategy fills each day with the cheapest interesting activities that
// still fit the trip-wide remaining budget, then charges the day's fixed
// accommodation and transport lines.
//
// The fixed lines are charged even when they exceed what is left, so remaining
// can go negative. Such days are reported in Allocation.Overruns; the
// arithmetic is left as is.
type GreedyStrategy struct {
	opts Options
}

func (g *GreedyStrategy) Name() string { return StrategyGreedy }

func (g *GreedyStrategy) Allocate(in AllocationInput) Allocation {
	records := in.Catalog.DayRecords
	if len(records) == 0 {
		records = []types.DayRecord{g.synthesizeRecord(in.Catalog)}
	}
	interests := interestSet(in.Interests)

	alloc := Allocation{Strategy: g.Name(), Days: make([]types.DailyPlanEntry, 0, in.TotalDays)}
	remaining := in.Budget
	for i := 0; i < in.TotalDays; i++ {
		rec := records[min(i, len(records)-1)]
		date := in.StartDate.AddDays(i)

		candidates := make([]types.DayActivity, 0, len(rec.Activities))
		for _, c := range rec.Activities {
			if interests != nil {
				if _, ok := interests[strings.ToLower(c.Category)]; !ok {
					continue
				}
			}
			c.Cost = nonNegative(c.Cost)
			candidates = append(candidates, c)
		}
		sort.SliceStable(candidates, func(a, b int) bool { return candidates[a].Cost < candidates[b].Cost })

		activities := make([]types.Activity, 0, len(candidates)+2)
		dayCost := 0.0
		for _, c := range candidates {
			if dayCost+c.Cost > remaining {
				break
			}
			dayCost += c.Cost
			activities = append(activities, types.Activity{
				PoiID:         strPtr(c.PoiID),
				TransportMode: types.DefaultTransportMode,
				Notes:         c.Name,
				EstimatedCost: c.Cost,
			})
		}

		if accCost := nonNegative(rec.AccommodationCost); rec.AccommodationID != "" || accCost > 0 {
			activities = append(activities, types.Activity{
				AccommodationID: optionalStr(rec.AccommodationID),
				TransportMode:   types.DefaultTransportMode,
				Notes:           "Overnight stay",
				EstimatedCost:   accCost,
			})
			dayCost += accCost
		}
		if trCost := nonNegative(rec.TransportCost); trCost > 0 || (rec.TransportMode != "" && rec.TransportMode != types.DefaultTransportMode) {
			mode := rec.TransportMode
			if mode == "" {
				mode = g.opts.DailyTransportMode
			}
			activities = append(activities, types.Activity{
				TransportMode: mode,
				Notes:         "Daily transport",
				EstimatedCost: trCost,
			})
			dayCost += trCost
		}

		if dayCost > remaining {
			alloc.Overruns = append(alloc.Overruns, Overrun{
				Day:             i + 1,
				Date:            date,
				DayCost:         dayCost,
				RemainingBefore: remaining,
			})
		}
		remaining -= dayCost

		alloc.Days = append(alloc.Days, types.DailyPlanEntry{Date: date, Activities: activities})
	}

	alloc.CostBreakdown = Aggregate(alloc.Days, types.CostBreakdown{Currency: g.opts.Currency})
	return alloc
}

// synthesizeRecord builds a single day template from a catalog without curated records.
func (g *GreedyStrategy) synthesizeRecord(c types.Catalog) types.DayRecord {
	rec := types.DayRecord{
		DayNumber:     1,
		Activities:    make([]types.DayActivity, 0, len(c.POIs)),
		TransportMode: g.opts.DailyTransportMode,
		TransportCost: g.opts.DailyTransportCost,
	}
	for _, p := range c.POIs {
		rec.Activities = append(rec.Activities, types.DayActivity{
			PoiID:    p.ID,
			Name:     p.Name.Default(),
			Category: p.Category,
			Cost:     p.VisitCost(),
		})
	}
	if len(c.Accommodations) > 0 {
		rec.AccommodationID = c.Accommodations[0].ID
		rec.AccommodationCost = c.Accommodations[0].CostPerNight
	}
	return rec
}

// RoundRobinStrategy walks the filtered POIs in catalog order, POIsPerDay at a
// time, and lodges the traveler in the first filtered accommodation.
type RoundRobinStrategy struct {
	opts Options
}

func (r *RoundRobinStrategy) Name() string { return StrategyRoundRobin }

func (r *RoundRobinStrategy) Allocate(in AllocationInput) Allocation {
	var acc *types.Accommodation
	if len(in.Catalog.Accommodations) > 0 {
		acc = &in.Catalog.Accommodations[0]
	}

	alloc := Allocation{Strategy: r.Name(), Days: make([]types.DailyPlanEntry, 0, in.TotalDays)}
	activitiesTotal := 0.0
	pois := in.Catalog.POIs
	for i := 0; i < in.TotalDays; i++ {
		lo := min(i*POIsPerDay, len(pois))
		hi := min(lo+POIsPerDay, len(pois))

		activities := make([]types.Activity, 0, hi-lo)
		for _, p := range pois[lo:hi] {
			a := types.Activity{
				PoiID:         strPtr(p.ID),
				TransportMode: types.DefaultTransportMode,
				Notes:         fmt.Sprintf("Day %d: visit %s", i+1, p.Name.Default()),
				EstimatedCost: nonNegative(p.VisitCost()),
			}
			if acc != nil {
				a.AccommodationID = strPtr(acc.ID)
			}
			activitiesTotal += a.EstimatedCost
			activities = append(activities, a)
		}
		alloc.Days = append(alloc.Days, types.DailyPlanEntry{Date: in.StartDate.AddDays(i), Activities: activities})
	}

	breakdown := types.CostBreakdown{
		Transport:  r.opts.TripTransportPlaceholder,
		Activities: activitiesTotal,
		Currency:   r.opts.Currency,
	}
	if acc != nil {
		breakdown.Accommodation = nonNegative(acc.CostPerNight) * float64(in.TotalDays)
	}
	breakdown.Total = breakdown.Transport + breakdown.Accommodation + breakdown.Activities
	alloc.CostBreakdown = breakdown
	return alloc
}

func interestSet(interests []string) map[string]struct{} {
	if len(interests) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(interests))
	for _, i := range interests {
		set[strings.ToLower(strings.TrimSpace(i))] = struct{}{}
	}
	return set
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func strPtr(s string) *string {
	return &s
}

func optionalStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
