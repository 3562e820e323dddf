package generativeAI

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// PromptInput describes the trip the model is asked to plan.
type PromptInput struct {
	Destination string
	Country     string
	StartDate   types.Date
	EndDate     types.Date
	TotalDays   int
	Budget      float64
	Currency    string
	TravelStyle types.TravelStyle
	Interests   []string
}

func generateItineraryPrompt(in PromptInput) string {
	interests := "no particular interests"
	if len(in.Interests) > 0 {
		interests = strings.Join(in.Interests, ", ")
	}
	place := in.Destination
	if in.Country != "" {
		place = fmt.Sprintf("%s, %s", in.Destination, in.Country)
	}
	currency := in.Currency
	if currency == "" {
		currency = types.DefaultCurrency
	}
	return fmt.Sprintf(`
        Plan a %d-day %s trip to %s from %s to %s with a total budget of %.2f %s.
        The traveler is interested in: %s.
        Return the response STRICTLY as a JSON object, without markdown, with exactly these fields:
        {
        "trip_name": "A short descriptive name for the trip",
        "start_date": "%s",
        "end_date": "%s",
        "total_days": %d,
        "budget": %.2f,
        "travel_style": "%s",
        "status": "draft",
        "daily_plan": [
            {
            "date": "YYYY-MM-DD",
            "activities": [
                {
                "poi_id": "identifier of the place visited, or null",
                "accommodation_id": "identifier of the lodging, or null",
                "transport_mode": "walk | bus | train | taxi | flight | ferry",
                "notes": "One sentence describing the activity",
                "estimated_cost": <non-negative number in %s>
                }
            ]
            }
        ],
        "cost_breakdown": {
            "transport": <number>,
            "accommodation": <number>,
            "activities": <number>,
            "total": <number>,
            "currency": "%s"
        }
        }
        The daily_plan must contain one entry per day and the total must not exceed the budget.`,
		in.TotalDays, in.TravelStyle, place, in.StartDate, in.EndDate, in.Budget, currency,
		interests,
		in.StartDate, in.EndDate, in.TotalDays, in.Budget, in.TravelStyle,
		currency, currency)
}
