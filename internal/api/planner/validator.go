package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// DestinationResolver looks up a destination by id. Implementations return an
// error matching types.ErrNotFound when the id does not resolve.
type DestinationResolver interface {
	GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error)
}

type Validator struct {
	resolver DestinationResolver
}

func NewValidator(resolver DestinationResolver) *Validator {
	return &Validator{resolver: resolver}
}

// Validate checks raw trip parameters and resolves them into a TripRequest.
// Local checks run before the destination lookup so a malformed request never hits storage.
func (v *Validator) Validate(ctx context.Context, p types.TripParams) (types.TripRequest, *types.Destination, error) {
	req, err := ParseTripParams(p)
	if err != nil {
		return types.TripRequest{}, nil, err
	}

	dest, err := v.resolver.GetDestination(ctx, req.DestinationID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.TripRequest{}, nil, types.NotFound("destination %s does not exist", req.DestinationID)
		}
		return types.TripRequest{}, nil, fmt.Errorf("failed to resolve destination: %w", err)
	}
	return req, dest, nil
}

// ParseTripParams runs every check that needs no I/O.
func ParseTripParams(p types.TripParams) (types.TripRequest, error) {
	rawDest := strings.TrimSpace(p.DestinationID)
	if rawDest == "" {
		return types.TripRequest{}, types.InvalidRequest(types.ReasonMissingField, "destination_id is required")
	}
	destID, err := uuid.Parse(rawDest)
	if err != nil {
		return types.TripRequest{}, types.InvalidRequest(types.ReasonBadDestination, "destination_id %q is not a valid id", rawDest)
	}

	if strings.TrimSpace(p.StartDate) == "" {
		return types.TripRequest{}, types.InvalidRequest(types.ReasonMissingField, "start_date is required")
	}
	if strings.TrimSpace(p.EndDate) == "" {
		return types.TripRequest{}, types.InvalidRequest(types.ReasonMissingField, "end_date is required")
	}
	start, err := types.ParseDate(p.StartDate)
	if err != nil {
		return types.TripRequest{}, types.InvalidRequest(types.ReasonBadDateRange, "start_date: %v", err)
	}
	end, err := types.ParseDate(p.EndDate)
	if err != nil {
		return types.TripRequest{}, types.InvalidRequest(types.ReasonBadDateRange, "end_date: %v", err)
	}
	if end.Before(start.Time) {
		return types.TripRequest{}, types.InvalidRequest(types.ReasonBadDateRange, "start_date %s is after end_date %s", start, end)
	}

	var budget float64
	if p.Budget != nil {
		if *p.Budget < 0 || math.IsNaN(*p.Budget) || math.IsInf(*p.Budget, 0) {
			return types.TripRequest{}, types.InvalidRequest(types.ReasonBadBudget, "budget must be a non-negative number")
		}
		budget = *p.Budget
	}

	style, _ := types.ParseTravelStyle(p.TravelStyle)

	return types.TripRequest{
		DestinationID: destID,
		TripName:      strings.TrimSpace(p.TripName),
		StartDate:     start,
		EndDate:       end,
		TotalDays:     TotalDays(start, end),
		Budget:        budget,
		TravelStyle:   style,
		Interests:     NormalizeInterests(p.Interests),
	}, nil
}

// TotalDays is the inclusive day count between two dates, never less than 1.
func TotalDays(start, end types.Date) int {
	days := int(math.Ceil(end.Sub(start.Time).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// NormalizeInterests lower-cases, trims and de-duplicates interest tags, keeping first-seen order.
func NormalizeInterests(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
