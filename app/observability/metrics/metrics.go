package metrics

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "go-trip-planner"

// PlannerMetrics holds the planner's metric instruments.
// All methods are safe to call on a nil receiver, which records nothing.
type PlannerMetrics struct {
	ItinerariesPlannedTotal metric.Int64Counter
	PlanSourceTotal         metric.Int64Counter
	AIGenerationFailures    metric.Int64Counter
	AIGenerationDuration    metric.Float64Histogram
	GreedyOverrunsTotal     metric.Int64Counter
}

var (
	plannerMetrics *PlannerMetrics
	once           sync.Once
)

// InitPlannerMetrics creates the global instruments from the global MeterProvider, once.
func InitPlannerMetrics() *PlannerMetrics {
	once.Do(func() {
		m, err := New(otel.GetMeterProvider().Meter(meterName))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Planner metrics instruments initialized.")
		plannerMetrics = m
	})
	return plannerMetrics
}

// Get returns the global instruments. Panics if InitPlannerMetrics was not called first.
func Get() *PlannerMetrics {
	if plannerMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitPlannerMetrics() first.")
	}
	return plannerMetrics
}

// New creates the instruments on meter.
func New(meter metric.Meter) (*PlannerMetrics, error) {
	var err error
	m := &PlannerMetrics{}

	m.ItinerariesPlannedTotal, err = meter.Int64Counter(
		"itineraries_planned_total",
		metric.WithDescription("Itineraries planned by the local allocator, by strategy"),
		metric.WithUnit("{itinerary}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create itineraries_planned_total: %w", err)
	}

	m.PlanSourceTotal, err = meter.Int64Counter(
		"plan_source_total",
		metric.WithDescription("Generated itineraries by the source that produced them"),
		metric.WithUnit("{itinerary}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan_source_total: %w", err)
	}

	m.AIGenerationFailures, err = meter.Int64Counter(
		"ai_generation_failures_total",
		metric.WithDescription("Failed AI itinerary generations, by reason"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai_generation_failures_total: %w", err)
	}

	m.AIGenerationDuration, err = meter.Float64Histogram(
		"ai_generation_duration_seconds",
		metric.WithDescription("Duration of AI itinerary generation in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai_generation_duration_seconds: %w", err)
	}

	m.GreedyOverrunsTotal, err = meter.Int64Counter(
		"greedy_budget_overruns_total",
		metric.WithDescription("Greedy-allocated days whose fixed costs exceeded the remaining budget"),
		metric.WithUnit("{day}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create greedy_budget_overruns_total: %w", err)
	}
	return m, nil
}

func (m *PlannerMetrics) RecordPlanned(ctx context.Context, strategy string, overruns int) {
	if m == nil {
		return
	}
	m.ItinerariesPlannedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("strategy", strategy)))
	if overruns > 0 {
		m.GreedyOverrunsTotal.Add(ctx, int64(overruns), metric.WithAttributes(attribute.String("strategy", strategy)))
	}
}

func (m *PlannerMetrics) RecordSource(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.PlanSourceTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordGeneration records one AI generation; an empty reason means success.
func (m *PlannerMetrics) RecordGeneration(ctx context.Context, elapsed time.Duration, reason string) {
	if m == nil {
		return
	}
	outcome := "success"
	if reason != "" {
		outcome = "failure"
		m.AIGenerationFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
	m.AIGenerationDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("outcome", outcome)))
}
