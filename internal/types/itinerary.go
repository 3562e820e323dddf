package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format of every calendar date in an itinerary.
const DateLayout = "2006-01-02"

// DefaultCurrency is used when neither the caller nor the stored breakdown names one.
const DefaultCurrency = "INR"

// DefaultTransportMode marks an activity without a paid transport leg.
const DefaultTransportMode = "walk"

type TravelStyle string

const (
	TravelStyleLuxury   TravelStyle = "luxury"
	TravelStyleBudget   TravelStyle = "budget"
	TravelStyleBalanced TravelStyle = "balanced"
)

// ParseTravelStyle returns the style and whether the raw value was a known style.
// Unknown or empty values resolve to balanced.
func ParseTravelStyle(raw string) (TravelStyle, bool) {
	switch TravelStyle(strings.ToLower(strings.TrimSpace(raw))) {
	case TravelStyleLuxury:
		return TravelStyleLuxury, true
	case TravelStyleBudget:
		return TravelStyleBudget, true
	case TravelStyleBalanced:
		return TravelStyleBalanced, true
	}
	return TravelStyleBalanced, false
}

type ItineraryStatus string

const (
	StatusDraft     ItineraryStatus = "draft"
	StatusConfirmed ItineraryStatus = "confirmed"
	StatusFinal     ItineraryStatus = "final"
)

// ParseItineraryStatus mirrors ParseTravelStyle; unknown values resolve to draft.
func ParseItineraryStatus(raw string) (ItineraryStatus, bool) {
	switch ItineraryStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusDraft:
		return StatusDraft, true
	case StatusConfirmed:
		return StatusConfirmed, true
	case StatusFinal:
		return StatusFinal, true
	}
	return StatusDraft, false
}

// PlanSource records where the daily plan of an itinerary came from.
type PlanSource string

const (
	SourceNone     PlanSource = ""
	SourceLocal    PlanSource = "local"
	SourceAI       PlanSource = "ai"
	SourceFixture  PlanSource = "fixture"
	SourceDefault  PlanSource = "default"
	SourceUserEdit PlanSource = "user_edit"
)

// Date is a calendar day serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD and RFC3339 timestamps.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return NewDate(t), nil
}

func (d Date) AddDays(n int) Date {
	return NewDate(d.Time.AddDate(0, 0, n))
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TripRequest holds the validated trip parameters.
type TripRequest struct {
	DestinationID uuid.UUID   `json:"destination_id"`
	TripName      string      `json:"trip_name,omitempty"`
	StartDate     Date        `json:"start_date"`
	EndDate       Date        `json:"end_date"`
	TotalDays     int         `json:"total_days"`
	Budget        float64     `json:"budget"`
	TravelStyle   TravelStyle `json:"travel_style"`
	Interests     []string    `json:"interests,omitempty"`
}

// TripParams is the raw, unvalidated form of a trip request as received from a client.
type TripParams struct {
	DestinationID string   `json:"destination_id"`
	TripName      string   `json:"trip_name,omitempty"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Budget        *float64 `json:"budget,omitempty"`
	TravelStyle   string   `json:"travel_style,omitempty"`
	Interests     []string `json:"interests,omitempty"`
}

type Activity struct {
	PoiID           *string `json:"poi_id" bson:"poi_id"`
	AccommodationID *string `json:"accommodation_id" bson:"accommodation_id"`
	TransportMode   string  `json:"transport_mode" bson:"transport_mode"`
	Notes           string  `json:"notes" bson:"notes"`
	EstimatedCost   float64 `json:"estimated_cost" bson:"estimated_cost"`
}

// IsVisit reports whether the activity is a visit to a point of interest.
func (a Activity) IsVisit() bool {
	return a.PoiID != nil && *a.PoiID != ""
}

type DailyPlanEntry struct {
	Date       Date       `json:"date"`
	Activities []Activity `json:"activities"`
}

type CostBreakdown struct {
	Transport     float64 `json:"transport" bson:"transport"`
	Accommodation float64 `json:"accommodation" bson:"accommodation"`
	Activities    float64 `json:"activities" bson:"activities"`
	Total         float64 `json:"total" bson:"total"`
	Currency      string  `json:"currency" bson:"currency"`
}

type Itinerary struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	DestinationID uuid.UUID        `json:"destination_id"`
	TripName      string           `json:"trip_name"`
	StartDate     Date             `json:"start_date"`
	EndDate       Date             `json:"end_date"`
	TotalDays     int              `json:"total_days"`
	Budget        float64          `json:"budget"`
	TravelStyle   TravelStyle      `json:"travel_style"`
	Status        ItineraryStatus  `json:"status"`
	Source        PlanSource       `json:"source,omitempty"`
	DailyPlan     []DailyPlanEntry `json:"daily_plan"`
	CostBreakdown CostBreakdown    `json:"cost_breakdown"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NewDraftItinerary builds the empty draft persisted at trip-request time.
func NewDraftItinerary(userID uuid.UUID, req TripRequest) *Itinerary {
	name := req.TripName
	if name == "" {
		name = "My Trip"
	}
	return &Itinerary{
		ID:            uuid.New(),
		UserID:        userID,
		DestinationID: req.DestinationID,
		TripName:      name,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalDays:     req.TotalDays,
		Budget:        req.Budget,
		TravelStyle:   req.TravelStyle,
		Status:        StatusDraft,
		DailyPlan:     []DailyPlanEntry{},
		CostBreakdown: CostBreakdown{Currency: DefaultCurrency},
	}
}

// PaginatedItineraries is the list response for a user's itineraries.
type PaginatedItineraries struct {
	Itineraries  []Itinerary `json:"itineraries"`
	TotalRecords int         `json:"total_records"`
	Page         int         `json:"page"`
	PageSize     int         `json:"page_size"`
}

// PlanItineraryRequest selects the local allocation strategy for a stored draft.
type PlanItineraryRequest struct {
	Strategy  string   `json:"strategy,omitempty" example:"greedy"`
	Interests []string `json:"interests,omitempty"`
}
