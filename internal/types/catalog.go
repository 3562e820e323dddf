package types

import (
	"sort"

	"github.com/google/uuid"
)

// LocalizedText maps a language tag to a display string.
type LocalizedText map[string]string

// Default returns the English text, or the first available translation in tag order.
func (l LocalizedText) Default() string {
	if v, ok := l["en"]; ok && v != "" {
		return v
	}
	tags := make([]string, 0, len(l))
	for tag := range l {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		if l[tag] != "" {
			return l[tag]
		}
	}
	return ""
}

type Destination struct {
	ID       uuid.UUID     `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Country  string        `json:"country" yaml:"country"`
	Currency string        `json:"currency" yaml:"currency"`
	Summary  LocalizedText `json:"summary,omitempty" yaml:"summary"`
}

type CostEntry struct {
	Label  string  `json:"label" yaml:"label"`
	Amount float64 `json:"amount" yaml:"amount"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

type POI struct {
	ID              string        `json:"id" yaml:"id"`
	Name            LocalizedText `json:"name" yaml:"name"`
	Category        string        `json:"category" yaml:"category"`
	Costs           []CostEntry   `json:"costs" yaml:"costs"`
	DurationMinutes int           `json:"duration_minutes" yaml:"duration_minutes"`
	Tags            []string      `json:"tags,omitempty" yaml:"tags"`
	Location        Coordinates   `json:"location" yaml:"location"`
}

// VisitCost is the first listed per-visit cost; a POI without cost entries is free.
func (p POI) VisitCost() float64 {
	if len(p.Costs) == 0 {
		return 0
	}
	return p.Costs[0].Amount
}

type Accommodation struct {
	ID           string        `json:"id" yaml:"id"`
	Name         LocalizedText `json:"name" yaml:"name"`
	CostPerNight float64       `json:"cost_per_night" yaml:"cost_per_night"`
	Category     string        `json:"category" yaml:"category"`
	Amenities    []string      `json:"amenities,omitempty" yaml:"amenities"`
}

// DayActivity is a candidate activity inside a curated day record.
type DayActivity struct {
	PoiID    string  `json:"poi_id" yaml:"poi_id"`
	Name     string  `json:"name" yaml:"name"`
	Category string  `json:"category" yaml:"category"`
	Cost     float64 `json:"cost" yaml:"cost"`
}

// DayRecord is a curated per-day template: candidate activities plus the fixed
// accommodation and transport lines charged for that day.
type DayRecord struct {
	DayNumber         int           `json:"day_number" yaml:"day_number"`
	Activities        []DayActivity `json:"activities" yaml:"activities"`
	AccommodationID   string        `json:"accommodation_id,omitempty" yaml:"accommodation_id"`
	AccommodationCost float64       `json:"accommodation_cost" yaml:"accommodation_cost"`
	TransportMode     string        `json:"transport_mode,omitempty" yaml:"transport_mode"`
	TransportCost     float64       `json:"transport_cost" yaml:"transport_cost"`
}

// Catalog is the read-only reference data a destination owns.
type Catalog struct {
	Destination    Destination     `json:"destination" yaml:"destination"`
	POIs           []POI           `json:"pois" yaml:"pois"`
	Accommodations []Accommodation `json:"accommodations" yaml:"accommodations"`
	DayRecords     []DayRecord     `json:"day_records,omitempty" yaml:"day_records"`
}

// Clone returns a deep copy so callers can never alias cached catalog slices.
func (c Catalog) Clone() Catalog {
	out := Catalog{Destination: c.Destination}
	out.POIs = make([]POI, len(c.POIs))
	for i, p := range c.POIs {
		p.Costs = append([]CostEntry(nil), p.Costs...)
		p.Tags = append([]string(nil), p.Tags...)
		out.POIs[i] = p
	}
	out.Accommodations = make([]Accommodation, len(c.Accommodations))
	for i, a := range c.Accommodations {
		a.Amenities = append([]string(nil), a.Amenities...)
		out.Accommodations[i] = a
	}
	out.DayRecords = make([]DayRecord, len(c.DayRecords))
	for i, d := range c.DayRecords {
		d.Activities = append([]DayActivity(nil), d.Activities...)
		out.DayRecords[i] = d
	}
	return out
}
