package planner

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const defaultTripName = "My Trip"

// Normalizer coerces an untrusted itinerary payload (AI output or a fallback
// fixture) into the canonical Itinerary. Every field has a default; only a
// missing payload is an error.
type Normalizer struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewNormalizer builds a Normalizer. A nil clock uses time.Now.
func NewNormalizer(logger *slog.Logger, clock func() time.Time) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Normalizer{logger: logger, now: clock}
}

// Normalize maps payload onto an Itinerary. The payload may be a decoded JSON
// value or raw JSON bytes/text. userID and destinationID come from the caller;
// the payload's own user_id and destination_id are only used when those are empty.
func (n *Normalizer) Normalize(payload any, userID, destinationID string) (types.Itinerary, error) {
	obj, err := n.toObject(payload)
	if err != nil {
		return types.Itinerary{}, err
	}
	today := types.NewDate(n.now())

	it := types.Itinerary{
		UserID:        resolveID(userID, obj, "user_id"),
		DestinationID: resolveID(destinationID, obj, "destination_id"),
		TripName:      defaultTripName,
		StartDate:     today,
		EndDate:       today,
		TotalDays:     1,
		TravelStyle:   types.TravelStyleBalanced,
		Status:        types.StatusDraft,
		DailyPlan:     []types.DailyPlanEntry{},
	}

	if name, ok := stringField(obj, "trip_name"); ok && strings.TrimSpace(name) != "" {
		it.TripName = strings.TrimSpace(name)
	}
	if d, ok := dateField(obj, "start_date"); ok {
		it.StartDate = d
	}
	if d, ok := dateField(obj, "end_date"); ok {
		it.EndDate = d
	}
	if days, ok := intField(obj, "total_days"); ok && days > 0 {
		it.TotalDays = days
	}
	if budget, ok := floatField(obj, "budget"); ok && budget >= 0 {
		it.Budget = budget
	}
	if raw, ok := stringField(obj, "travel_style"); ok {
		if style, valid := types.ParseTravelStyle(raw); valid {
			it.TravelStyle = style
		}
	}
	if raw, ok := stringField(obj, "status"); ok {
		if status, valid := types.ParseItineraryStatus(raw); valid {
			it.Status = status
		}
	}

	if rawPlan, present := obj["daily_plan"]; present {
		days, isArray := rawPlan.([]any)
		if !isArray {
			n.logger.Warn("daily_plan is not an array, using an empty plan",
				slog.String("type", jsonKind(rawPlan)))
		}
		for _, rawDay := range days {
			it.DailyPlan = append(it.DailyPlan, n.normalizeDay(rawDay, today))
		}
	}

	it.CostBreakdown = normalizeBreakdown(obj["cost_breakdown"], it.DailyPlan)
	return it, nil
}

// toObject turns the accepted payload forms into a JSON object. Anything that
// is present but not an object is treated as an empty object.
func (n *Normalizer) toObject(payload any) (map[string]any, error) {
	switch v := payload.(type) {
	case nil:
		return nil, types.NormalizationFailure(nil, "itinerary payload is missing")
	case map[string]any:
		return v, nil
	case json.RawMessage:
		return n.decodeObject(v)
	case []byte:
		return n.decodeObject(v)
	case string:
		return n.decodeObject([]byte(v))
	}
	n.logger.Warn("itinerary payload is not an object, using defaults", slog.String("type", jsonKind(payload)))
	return map[string]any{}, nil
}

func (n *Normalizer) decodeObject(raw []byte) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, types.NormalizationFailure(nil, "itinerary payload is missing")
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		n.logger.Warn("itinerary payload is not valid JSON, using defaults", slog.Any("error", err))
		return map[string]any{}, nil
	}
	if obj, ok := decoded.(map[string]any); ok {
		return obj, nil
	}
	n.logger.Warn("itinerary payload is not an object, using defaults", slog.String("type", jsonKind(decoded)))
	return map[string]any{}, nil
}

func (n *Normalizer) normalizeDay(raw any, today types.Date) types.DailyPlanEntry {
	day := types.DailyPlanEntry{Date: today, Activities: []types.Activity{}}
	obj, ok := raw.(map[string]any)
	if !ok {
		return day
	}
	if d, ok := dateField(obj, "date"); ok {
		day.Date = d
	}
	if rawActivities, ok := obj["activities"].([]any); ok {
		for _, ra := range rawActivities {
			day.Activities = append(day.Activities, normalizeActivity(ra))
		}
	}
	return day
}

func normalizeActivity(raw any) types.Activity {
	a := types.Activity{TransportMode: types.DefaultTransportMode}
	obj, ok := raw.(map[string]any)
	if !ok {
		return a
	}
	if id, ok := idField(obj, "poi_id"); ok {
		a.PoiID = &id
	}
	if id, ok := idField(obj, "accommodation_id"); ok {
		a.AccommodationID = &id
	}
	if mode, ok := stringField(obj, "transport_mode"); ok && strings.TrimSpace(mode) != "" {
		a.TransportMode = strings.TrimSpace(mode)
	}
	if notes, ok := stringField(obj, "notes"); ok {
		a.Notes = notes
	}
	if cost, ok := floatField(obj, "estimated_cost"); ok && cost >= 0 {
		a.EstimatedCost = cost
	}
	return a
}

// normalizeBreakdown merges the payload's buckets over a zero breakdown. A zero
// total is re-derived from the plan plus the transport and accommodation buckets.
func normalizeBreakdown(raw any, plan []types.DailyPlanEntry) types.CostBreakdown {
	cb := types.CostBreakdown{Currency: types.DefaultCurrency}
	if obj, ok := raw.(map[string]any); ok {
		if v, ok := floatField(obj, "transport"); ok && v >= 0 {
			cb.Transport = v
		}
		if v, ok := floatField(obj, "accommodation"); ok && v >= 0 {
			cb.Accommodation = v
		}
		if v, ok := floatField(obj, "activities"); ok && v >= 0 {
			cb.Activities = v
		}
		if v, ok := floatField(obj, "total"); ok && v >= 0 {
			cb.Total = v
		}
		if c, ok := stringField(obj, "currency"); ok && strings.TrimSpace(c) != "" {
			cb.Currency = strings.ToUpper(strings.TrimSpace(c))
		}
	}
	if cb.Total == 0 {
		var activities float64
		for _, day := range plan {
			for _, a := range day.Activities {
				activities += a.EstimatedCost
			}
		}
		cb.Total = activities + cb.Transport + cb.Accommodation
	}
	return cb
}

func resolveID(fromCaller string, obj map[string]any, key string) uuid.UUID {
	if id, err := uuid.Parse(strings.TrimSpace(fromCaller)); err == nil {
		return id
	}
	if raw, ok := stringField(obj, key); ok {
		if id, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
			return id
		}
	}
	return uuid.Nil
}

// stringField returns obj[key] when it is a string.
func stringField(obj map[string]any, key string) (string, bool) {
	s, ok := obj[key].(string)
	return s, ok
}

// idField accepts non-empty strings and integral numbers as references.
func idField(obj map[string]any, key string) (string, bool) {
	switch v := obj[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s, true
		}
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatFloat(v, 'f', -1, 64), true
		}
	case int:
		return strconv.Itoa(v), true
	}
	return "", false
}

// floatField returns obj[key] as a finite number. Numeric strings are accepted.
func floatField(obj map[string]any, key string) (float64, bool) {
	var f float64
	switch v := obj[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// intField returns obj[key] when it is an integral number.
func intField(obj map[string]any, key string) (int, bool) {
	f, ok := floatField(obj, key)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func dateField(obj map[string]any, key string) (types.Date, bool) {
	switch v := obj[key].(type) {
	case string:
		d, err := types.ParseDate(v)
		if err != nil {
			return types.Date{}, false
		}
		return d, true
	case time.Time:
		return types.NewDate(v), true
	}
	return types.Date{}, false
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return "unknown"
}
