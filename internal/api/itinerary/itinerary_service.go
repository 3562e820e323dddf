package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/api/planner"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// CatalogProvider is the destination data the itinerary service reads.
type CatalogProvider interface {
	GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error)
	GetCatalog(ctx context.Context, id uuid.UUID) (types.Catalog, error)
}

type GenerateResponse struct {
	Itinerary types.Itinerary  `json:"itinerary"`
	Source    types.PlanSource `json:"source"`
	Trail     []State          `json:"trail"`
	AIFailure string           `json:"ai_failure,omitempty"`
}

type PlanResponse struct {
	Itinerary types.Itinerary   `json:"itinerary"`
	Strategy  string            `json:"strategy"`
	Overruns  []planner.Overrun `json:"overruns,omitempty"`
}

type Service interface {
	CreateDraft(ctx context.Context, userID uuid.UUID, params types.TripParams) (*types.Itinerary, error)
	Generate(ctx context.Context, userID uuid.UUID, params types.TripParams) (*GenerateResponse, error)
	Plan(ctx context.Context, userID, id uuid.UUID, req types.PlanItineraryRequest) (*PlanResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*types.Itinerary, error)
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*types.PaginatedItineraries, error)
	Update(ctx context.Context, userID, id uuid.UUID, patch map[string]json.RawMessage) (*types.Itinerary, error)
	Finalize(ctx context.Context, userID, id uuid.UUID) (*types.Itinerary, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type ServiceImpl struct {
	logger          *slog.Logger
	repo            Repository
	catalogs        CatalogProvider
	validator       *planner.Validator
	arbitrator      *Arbitrator
	strategies      planner.Strategies
	defaultStrategy string
	metrics         *metrics.PlannerMetrics
	now             func() time.Time
}

type ServiceOption func(*ServiceImpl)

// WithClock replaces time.Now for created_at and updated_at stamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *ServiceImpl) { s.now = now }
}

func WithMetrics(m *metrics.PlannerMetrics) ServiceOption {
	return func(s *ServiceImpl) { s.metrics = m }
}

func NewService(repo Repository, catalogs CatalogProvider, arbitrator *Arbitrator, strategies planner.Strategies,
	defaultStrategy string, logger *slog.Logger, opts ...ServiceOption) *ServiceImpl {
	if defaultStrategy == "" {
		defaultStrategy = planner.StrategyGreedy
	}
	s := &ServiceImpl{
		logger:          logger,
		repo:            repo,
		catalogs:        catalogs,
		validator:       planner.NewValidator(catalogs),
		arbitrator:      arbitrator,
		strategies:      strategies,
		defaultStrategy: defaultStrategy,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ServiceImpl) CreateDraft(ctx context.Context, userID uuid.UUID, params types.TripParams) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "CreateDraft", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	req, _, err := s.validator.Validate(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid trip request")
		return nil, err
	}

	it := types.NewDraftItinerary(userID, req)
	s.stamp(it, true)
	if err := s.repo.Save(ctx, it); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save draft")
		return nil, fmt.Errorf("failed to save draft itinerary: %w", err)
	}
	span.SetStatus(codes.Ok, "draft created")
	return it, nil
}

// Generate validates the request, acquires a plan from the AI or its
// fallbacks, recomputes the breakdown and stores the result.
func (s *ServiceImpl) Generate(ctx context.Context, userID uuid.UUID, params types.TripParams) (*GenerateResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("destination.id", params.DestinationID),
	))
	defer span.End()
	l := s.logger.With(slog.String("method", "Generate"))

	req, dest, err := s.validator.Validate(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid trip request")
		return nil, err
	}

	res, err := s.arbitrator.Acquire(ctx, ArbitrationInput{UserID: userID, Destination: *dest, Request: req})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "plan acquisition failed")
		return nil, err
	}

	it := res.Itinerary
	it.ID = uuid.New()
	it.UserID = userID
	it.DestinationID = req.DestinationID
	it.CostBreakdown = planner.Aggregate(it.DailyPlan, it.CostBreakdown)
	s.stamp(&it, true)
	if err := s.repo.Save(ctx, &it); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save itinerary")
		return nil, fmt.Errorf("failed to save generated itinerary: %w", err)
	}

	resp := &GenerateResponse{Itinerary: it, Source: res.Source, Trail: res.Trail}
	if res.AIFailure != nil {
		resp.AIFailure = string(res.AIFailure.Reason)
	}
	l.InfoContext(ctx, "Itinerary generated",
		slog.String("itinerary_id", it.ID.String()),
		slog.String("source", string(res.Source)),
		slog.Int("days", len(it.DailyPlan)))
	span.SetStatus(codes.Ok, "itinerary generated")
	return resp, nil
}

// Plan replaces the itinerary's daily plan with a locally allocated one.
func (s *ServiceImpl) Plan(ctx context.Context, userID, id uuid.UUID, req types.PlanItineraryRequest) (*PlanResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Plan", trace.WithAttributes(
		attribute.String("itinerary.id", id.String()),
		attribute.String("strategy", req.Strategy),
	))
	defer span.End()
	l := s.logger.With(slog.String("method", "Plan"), slog.String("itinerary_id", id.String()))

	it, err := s.owned(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if it.Status == types.StatusFinal {
		return nil, types.InvalidRequest(types.ReasonFinalized, "itinerary %s is final", id)
	}

	strategy, err := s.strategies.Get(req.Strategy, s.defaultStrategy)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalogs.GetCatalog(ctx, it.DestinationID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load catalog")
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	alloc := planner.Run(strategy, catalog, types.TripRequest{
		DestinationID: it.DestinationID,
		TripName:      it.TripName,
		StartDate:     it.StartDate,
		EndDate:       it.EndDate,
		TotalDays:     it.TotalDays,
		Budget:        it.Budget,
		TravelStyle:   it.TravelStyle,
		Interests:     planner.NormalizeInterests(req.Interests),
	})
	for _, o := range alloc.Overruns {
		l.WarnContext(ctx, "Day exceeds remaining budget",
			slog.Int("day", o.Day),
			slog.String("date", o.Date.String()),
			slog.Float64("day_cost", o.DayCost),
			slog.Float64("remaining_before", o.RemainingBefore))
	}

	it.DailyPlan = alloc.Days
	it.CostBreakdown = alloc.CostBreakdown
	it.Status = types.StatusConfirmed
	it.Source = types.SourceLocal
	s.stamp(it, false)
	if err := s.repo.Save(ctx, it); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save itinerary")
		return nil, fmt.Errorf("failed to save planned itinerary: %w", err)
	}
	s.metrics.RecordPlanned(ctx, alloc.Strategy, len(alloc.Overruns))

	span.SetStatus(codes.Ok, "itinerary planned")
	return &PlanResponse{Itinerary: *it, Strategy: alloc.Strategy, Overruns: alloc.Overruns}, nil
}

func (s *ServiceImpl) Get(ctx context.Context, userID, id uuid.UUID) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Get", trace.WithAttributes(
		attribute.String("itinerary.id", id.String()),
	))
	defer span.End()

	it, err := s.owned(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return it, nil
}

func (s *ServiceImpl) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*types.PaginatedItineraries, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "List", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.Int("page", page),
	))
	defer span.End()

	itineraries, total, err := s.repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list itineraries")
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	return &types.PaginatedItineraries{
		Itineraries:  itineraries,
		TotalRecords: total,
		Page:         page,
		PageSize:     pageSize,
	}, nil
}

// Update applies a partial edit. Only keys present in patch are touched;
// cost_breakdown is never taken from the client and is recomputed instead.
func (s *ServiceImpl) Update(ctx context.Context, userID, id uuid.UUID, patch map[string]json.RawMessage) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Update", trace.WithAttributes(
		attribute.String("itinerary.id", id.String()),
	))
	defer span.End()

	it, err := s.owned(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if it.Status == types.StatusFinal {
		return nil, types.InvalidRequest(types.ReasonFinalized, "itinerary %s is final", id)
	}

	if err := applyPatch(it, patch); err != nil {
		span.RecordError(err)
		return nil, err
	}
	it.CostBreakdown = planner.Aggregate(it.DailyPlan, it.CostBreakdown)
	s.stamp(it, false)

	if err := s.repo.Save(ctx, it); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save itinerary")
		return nil, fmt.Errorf("failed to save itinerary: %w", err)
	}
	span.SetStatus(codes.Ok, "itinerary updated")
	return it, nil
}

func (s *ServiceImpl) Finalize(ctx context.Context, userID, id uuid.UUID) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Finalize", trace.WithAttributes(
		attribute.String("itinerary.id", id.String()),
	))
	defer span.End()

	it, err := s.owned(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if it.Status == types.StatusFinal {
		return it, nil
	}
	it.Status = types.StatusFinal
	s.stamp(it, false)
	if err := s.repo.Save(ctx, it); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to finalize itinerary: %w", err)
	}
	return it, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Delete", trace.WithAttributes(
		attribute.String("itinerary.id", id.String()),
	))
	defer span.End()

	if _, err := s.owned(ctx, userID, id); err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	return nil
}

// owned loads an itinerary and checks it belongs to userID.
func (s *ServiceImpl) owned(ctx context.Context, userID, id uuid.UUID) (*types.Itinerary, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		if _, ok := types.AsPlanError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load itinerary: %w", err)
	}
	if it.UserID != userID {
		return nil, types.Unauthorized("itinerary %s belongs to another user", id)
	}
	return it, nil
}

func (s *ServiceImpl) stamp(it *types.Itinerary, created bool) {
	now := s.now().UTC()
	if created || it.CreatedAt.IsZero() {
		it.CreatedAt = now
	}
	it.UpdatedAt = now
}

func applyPatch(it *types.Itinerary, patch map[string]json.RawMessage) error {
	if raw, ok := patch["trip_name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return types.InvalidRequest(types.ReasonBadPlan, "trip_name must be a string")
		}
		if name = strings.TrimSpace(name); name == "" {
			return types.InvalidRequest(types.ReasonMissingField, "trip_name must not be empty")
		}
		it.TripName = name
	}

	if raw, ok := patch["travel_style"]; ok {
		var rawStyle string
		if err := json.Unmarshal(raw, &rawStyle); err != nil {
			return types.InvalidRequest(types.ReasonBadPlan, "travel_style must be a string")
		}
		style, valid := types.ParseTravelStyle(rawStyle)
		if !valid {
			return types.InvalidRequest(types.ReasonBadPlan, "unknown travel_style %q", rawStyle)
		}
		it.TravelStyle = style
	}

	if raw, ok := patch["budget"]; ok {
		var budget float64
		if err := json.Unmarshal(raw, &budget); err != nil || budget < 0 || math.IsNaN(budget) || math.IsInf(budget, 0) {
			return types.InvalidRequest(types.ReasonBadBudget, "budget must be a non-negative number")
		}
		it.Budget = budget
	}

	_, hasStart := patch["start_date"]
	_, hasEnd := patch["end_date"]
	if hasStart || hasEnd {
		start, end := it.StartDate.String(), it.EndDate.String()
		if hasStart {
			if err := json.Unmarshal(patch["start_date"], &start); err != nil {
				return types.InvalidRequest(types.ReasonBadDateRange, "start_date must be a YYYY-MM-DD string")
			}
		}
		if hasEnd {
			if err := json.Unmarshal(patch["end_date"], &end); err != nil {
				return types.InvalidRequest(types.ReasonBadDateRange, "end_date must be a YYYY-MM-DD string")
			}
		}
		req, err := planner.ParseTripParams(types.TripParams{
			DestinationID: it.DestinationID.String(),
			StartDate:     start,
			EndDate:       end,
		})
		if err != nil {
			return err
		}
		it.StartDate = req.StartDate
		it.EndDate = req.EndDate
		it.TotalDays = req.TotalDays
	}

	if raw, ok := patch["daily_plan"]; ok {
		plan, err := decodeDailyPlan(raw)
		if err != nil {
			return err
		}
		it.DailyPlan = plan
		it.Source = types.SourceUserEdit
	}

	if raw, ok := patch["status"]; ok {
		var rawStatus string
		if err := json.Unmarshal(raw, &rawStatus); err != nil {
			return types.InvalidRequest(types.ReasonBadPlan, "status must be a string")
		}
		status, valid := types.ParseItineraryStatus(rawStatus)
		if !valid {
			return types.InvalidRequest(types.ReasonBadPlan, "unknown status %q", rawStatus)
		}
		it.Status = status
	}
	return nil
}

func decodeDailyPlan(raw json.RawMessage) ([]types.DailyPlanEntry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, types.InvalidRequest(types.ReasonBadPlan, "daily_plan must be an array")
	}
	var plan []types.DailyPlanEntry
	if err := json.Unmarshal(trimmed, &plan); err != nil {
		return nil, types.InvalidRequest(types.ReasonBadPlan, "daily_plan is malformed: %v", err)
	}
	for i := range plan {
		if plan[i].Date.IsZero() {
			return nil, types.InvalidRequest(types.ReasonBadPlan, "daily_plan[%d] has no date", i)
		}
		if plan[i].Activities == nil {
			plan[i].Activities = []types.Activity{}
		}
		for j := range plan[i].Activities {
			a := &plan[i].Activities[j]
			if a.EstimatedCost < 0 || math.IsNaN(a.EstimatedCost) {
				return nil, types.InvalidRequest(types.ReasonBadPlan, "daily_plan[%d].activities[%d] has a negative cost", i, j)
			}
			if a.TransportMode == "" {
				a.TransportMode = types.DefaultTransportMode
			}
		}
	}
	return plan, nil
}
