package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestPlannerMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := New(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordPlanned(ctx, "greedy", 2)
	m.RecordPlanned(ctx, "round_robin", 0)
	m.RecordSource(ctx, "fixture")
	m.RecordGeneration(ctx, 150*time.Millisecond, "timeout")
	m.RecordGeneration(ctx, 80*time.Millisecond, "")

	data := collect(t, reader)

	planned, ok := data["itineraries_planned_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, planned.DataPoints, 2)

	overruns, ok := data["greedy_budget_overruns_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, overruns.DataPoints, 1)
	assert.Equal(t, int64(2), overruns.DataPoints[0].Value)

	failures, ok := data["ai_generation_failures_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, failures.DataPoints, 1)
	assert.Equal(t, int64(1), failures.DataPoints[0].Value)

	duration, ok := data["ai_generation_duration_seconds"].(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, duration.DataPoints, 2)
}

func TestPlannerMetrics_NilIsNoop(t *testing.T) {
	var m *PlannerMetrics
	assert.NotPanics(t, func() {
		m.RecordPlanned(context.Background(), "greedy", 1)
		m.RecordSource(context.Background(), "ai")
		m.RecordGeneration(context.Background(), time.Second, "transport")
	})
}
