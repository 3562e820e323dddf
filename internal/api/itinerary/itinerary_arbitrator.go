package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/api/planner"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// State is a step of plan acquisition.
type State string

const (
	StateAttemptingAI             State = "attempting_ai"
	StateNormalizingAIResult      State = "normalizing_ai_result"
	StateLoadingFallbackFixture   State = "loading_fallback_fixture"
	StateNormalizingFallback      State = "normalizing_fallback_result"
	StateSynthesizingDefaultDraft State = "synthesizing_default_draft"
	StateNormalizingDefaultDraft  State = "normalizing_default_draft"
	StateDone                     State = "done"
)

type Generator interface {
	Generate(ctx context.Context, in generativeAI.PromptInput) generativeAI.GenerationOutcome
}

type FixtureLoader interface {
	Load(destination string) (any, bool, error)
}

type ArbitrationInput struct {
	UserID      uuid.UUID
	Destination types.Destination
	Request     types.TripRequest
}

type ArbitrationResult struct {
	Itinerary types.Itinerary
	Source    types.PlanSource
	Trail     []State
	AIFailure *generativeAI.Failure
}

// Arbitrator produces a normalized itinerary for a trip request from the first
// source that yields one: the AI generator, the destination's fixture, or an
// empty default draft. AI failures never surface to the caller.
type Arbitrator struct {
	generator  Generator
	fixtures   FixtureLoader
	normalizer *planner.Normalizer
	metrics    *metrics.PlannerMetrics
	currency   string
	logger     *slog.Logger
}

// NewArbitrator accepts a nil generator (AI disabled) and nil metrics.
func NewArbitrator(generator Generator, fixtures FixtureLoader, normalizer *planner.Normalizer,
	m *metrics.PlannerMetrics, currency string, logger *slog.Logger) *Arbitrator {
	if currency == "" {
		currency = types.DefaultCurrency
	}
	return &Arbitrator{
		generator:  generator,
		fixtures:   fixtures,
		normalizer: normalizer,
		metrics:    m,
		currency:   currency,
		logger:     logger,
	}
}

func (a *Arbitrator) Acquire(ctx context.Context, in ArbitrationInput) (ArbitrationResult, error) {
	ctx, span := otel.Tracer("PlanArbitrator").Start(ctx, "Acquire", trace.WithAttributes(
		attribute.String("destination.id", in.Request.DestinationID.String()),
		attribute.String("destination.name", in.Destination.Name),
		attribute.Int("total_days", in.Request.TotalDays),
	))
	defer span.End()

	l := a.logger.With(slog.String("method", "Acquire"), slog.String("destination", in.Destination.Name))
	res := ArbitrationResult{}
	userID := in.UserID.String()
	destID := in.Request.DestinationID.String()

	res.Trail = append(res.Trail, StateAttemptingAI)
	outcome := a.generate(ctx, in)
	if outcome.OK() {
		res.Trail = append(res.Trail, StateNormalizingAIResult)
		it, err := a.normalizer.Normalize(outcome.Payload, userID, destID)
		if err == nil {
			return a.finish(ctx, span, res, it, types.SourceAI, in), nil
		}
		l.WarnContext(ctx, "AI itinerary could not be normalized", slog.Any("error", err))
	} else {
		res.AIFailure = outcome.Failure
		l.InfoContext(ctx, "AI itinerary unavailable, falling back",
			slog.String("reason", string(outcome.Failure.Reason)),
			slog.Any("error", outcome.Failure.Err))
	}

	res.Trail = append(res.Trail, StateLoadingFallbackFixture)
	if a.fixtures != nil {
		payload, found, err := a.fixtures.Load(in.Destination.Name)
		switch {
		case err != nil:
			l.WarnContext(ctx, "Fallback fixture unusable", slog.Any("error", err))
		case found:
			res.Trail = append(res.Trail, StateNormalizingFallback)
			it, err := a.normalizer.Normalize(payload, userID, destID)
			if err == nil {
				return a.finish(ctx, span, res, it, types.SourceFixture, in), nil
			}
			l.WarnContext(ctx, "Fallback fixture could not be normalized", slog.Any("error", err))
		default:
			l.DebugContext(ctx, "No fallback fixture", slog.String("key", FixtureKey(in.Destination.Name)))
		}
	}

	res.Trail = append(res.Trail, StateSynthesizingDefaultDraft)
	draft := a.defaultDraft(in)
	res.Trail = append(res.Trail, StateNormalizingDefaultDraft)
	it, err := a.normalizer.Normalize(draft, userID, destID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "no source produced an itinerary")
		return res, types.NormalizationFailure(err, "no plan source produced a usable itinerary")
	}
	return a.finish(ctx, span, res, it, types.SourceDefault, in), nil
}

func (a *Arbitrator) generate(ctx context.Context, in ArbitrationInput) generativeAI.GenerationOutcome {
	if a.generator == nil {
		return generativeAI.Failed(generativeAI.ReasonUnavailable, fmt.Errorf("AI generation is not configured"))
	}
	currency := in.Destination.Currency
	if currency == "" {
		currency = a.currency
	}
	start := time.Now()
	outcome := a.generator.Generate(ctx, generativeAI.PromptInput{
		Destination: in.Destination.Name,
		Country:     in.Destination.Country,
		StartDate:   in.Request.StartDate,
		EndDate:     in.Request.EndDate,
		TotalDays:   in.Request.TotalDays,
		Budget:      in.Request.Budget,
		Currency:    currency,
		TravelStyle: in.Request.TravelStyle,
		Interests:   in.Request.Interests,
	})
	reason := ""
	if !outcome.OK() {
		if outcome.Failure == nil {
			outcome = generativeAI.Failed(generativeAI.ReasonEmptyResponse, fmt.Errorf("generator returned no payload"))
		}
		reason = string(outcome.Failure.Reason)
	}
	a.metrics.RecordGeneration(ctx, time.Since(start), reason)
	return outcome
}

// finish pins the request's validated trip metadata onto the itinerary. The
// fixture and default plans are rebased to the requested dates.
func (a *Arbitrator) finish(ctx context.Context, span trace.Span, res ArbitrationResult, it types.Itinerary,
	source types.PlanSource, in ArbitrationInput) ArbitrationResult {
	req := in.Request
	if req.TripName != "" {
		it.TripName = req.TripName
	}
	it.StartDate = req.StartDate
	it.EndDate = req.EndDate
	it.TotalDays = req.TotalDays
	it.Budget = req.Budget
	it.TravelStyle = req.TravelStyle
	it.Source = source

	if source != types.SourceAI {
		// costs of trimmed days must not survive in the breakdown
		if len(it.DailyPlan) > req.TotalDays {
			it.CostBreakdown = types.CostBreakdown{Currency: it.CostBreakdown.Currency}
		}
		it.DailyPlan = rebase(it.DailyPlan, req.StartDate, req.TotalDays)
	}
	it.Status = types.StatusDraft
	for _, day := range it.DailyPlan {
		if len(day.Activities) > 0 {
			it.Status = types.StatusConfirmed
			break
		}
	}
	if it.CostBreakdown.Currency == "" {
		it.CostBreakdown.Currency = a.currency
	}

	res.Itinerary = it
	res.Source = source
	res.Trail = append(res.Trail, StateDone)
	a.metrics.RecordSource(ctx, string(source))
	span.SetAttributes(attribute.String("plan.source", string(source)))
	span.SetStatus(codes.Ok, "itinerary acquired")
	return res
}

// rebase lays the plan's days onto consecutive dates from start, dropping days
// past the trip and padding short plans with empty days.
func rebase(plan []types.DailyPlanEntry, start types.Date, totalDays int) []types.DailyPlanEntry {
	out := make([]types.DailyPlanEntry, totalDays)
	for i := range out {
		out[i].Date = start.AddDays(i)
		out[i].Activities = []types.Activity{}
		if i < len(plan) && plan[i].Activities != nil {
			out[i].Activities = plan[i].Activities
		}
	}
	return out
}

// defaultDraft is a JSON-shaped skeleton with one empty day per trip date.
func (a *Arbitrator) defaultDraft(in ArbitrationInput) map[string]any {
	req := in.Request
	days := make([]any, 0, req.TotalDays)
	for i := 0; i < req.TotalDays; i++ {
		days = append(days, map[string]any{
			"date":       req.StartDate.AddDays(i).String(),
			"activities": []any{},
		})
	}
	currency := in.Destination.Currency
	if currency == "" {
		currency = a.currency
	}
	name := req.TripName
	if name == "" && in.Destination.Name != "" {
		name = "Trip to " + in.Destination.Name
	}
	return map[string]any{
		"trip_name":      name,
		"start_date":     req.StartDate.String(),
		"end_date":       req.EndDate.String(),
		"total_days":     float64(req.TotalDays),
		"budget":         req.Budget,
		"travel_style":   string(req.TravelStyle),
		"status":         string(types.StatusDraft),
		"daily_plan":     days,
		"cost_breakdown": map[string]any{"currency": currency},
	}
}
