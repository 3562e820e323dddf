package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) GenerateContent(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, cfg)
	return args.String(0), args.Error(1)
}

func testPromptInput() PromptInput {
	start, _ := types.ParseDate("2025-05-01")
	return PromptInput{
		Destination: "Goa",
		Country:     "India",
		StartDate:   start,
		EndDate:     start.AddDays(2),
		TotalDays:   3,
		Budget:      25000,
		TravelStyle: types.TravelStyleBudget,
		Interests:   []string{"beaches", "food"},
	}
}

func newTestGenerator(gen ContentGenerator, cfg config.AIConfig) *ItineraryGenerator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewItineraryGenerator(gen, cfg, logger)
}

func TestItineraryGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("fenced JSON is decoded", func(t *testing.T) {
		gen := new(MockContentGenerator)
		gen.On("GenerateContent", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
			Return("```json\n{\"trip_name\": \"Goa on a shoestring\", \"daily_plan\": []}\n```", nil).Once()

		outcome := newTestGenerator(gen, config.AIConfig{Timeout: time.Second}).Generate(ctx, testPromptInput())
		require.True(t, outcome.OK())
		assert.Equal(t, "Goa on a shoestring", outcome.Payload["trip_name"])
		assert.Equal(t, 1, outcome.Attempts)
		gen.AssertExpectations(t)
	})

	t.Run("prompt carries the trip parameters", func(t *testing.T) {
		gen := new(MockContentGenerator)
		gen.On("GenerateContent", mock.Anything, mock.MatchedBy(func(p string) bool {
			return assert.Contains(t, p, "3-day budget trip to Goa, India") &&
				assert.Contains(t, p, "2025-05-03") &&
				assert.Contains(t, p, "beaches, food") &&
				assert.Contains(t, p, "25000.00 INR")
		}), mock.MatchedBy(func(c *genai.GenerateContentConfig) bool {
			return c.ResponseMIMEType == "application/json" && c.Temperature != nil && *c.Temperature == float32(0.3)
		})).Return(`{"trip_name":"ok"}`, nil).Once()

		outcome := newTestGenerator(gen, config.AIConfig{Timeout: time.Second, Temperature: 0.3}).Generate(ctx, testPromptInput())
		assert.True(t, outcome.OK())
		gen.AssertExpectations(t)
	})

	t.Run("unparsable output is retried up to max attempts", func(t *testing.T) {
		gen := new(MockContentGenerator)
		gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return("Sorry, I cannot help with that {", nil).Times(2)

		outcome := newTestGenerator(gen, config.AIConfig{Timeout: time.Second, MaxAttempts: 2}).Generate(ctx, testPromptInput())
		require.False(t, outcome.OK())
		assert.Equal(t, ReasonUnparsable, outcome.Failure.Reason)
		assert.Equal(t, 2, outcome.Attempts)
		gen.AssertExpectations(t)
	})

	t.Run("timeout", func(t *testing.T) {
		gen := new(MockContentGenerator)
		gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return("", fmt.Errorf("failed to generate content: %w", context.DeadlineExceeded)).Once()

		outcome := newTestGenerator(gen, config.AIConfig{Timeout: 20 * time.Millisecond}).Generate(ctx, testPromptInput())
		require.NotNil(t, outcome.Failure)
		assert.Equal(t, ReasonTimeout, outcome.Failure.Reason)
	})
}

func TestItineraryGenerator_FailureReasons(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		err    error
		reason FailureReason
	}{
		{"empty response", "   ", nil, ReasonEmptyResponse},
		{"array instead of object", "[1, 2]", nil, ReasonUnparsable},
		{"null object", "null", nil, ReasonUnparsable},
		{"server error", "", errors.New("failed to generate content: Error 503, Message: overloaded, Status: UNAVAILABLE, Details: []"), ReasonBadStatus},
		{"quota", "", errors.New("failed to generate content: Error 429, Message: quota, Status: RESOURCE_EXHAUSTED, Details: []"), ReasonRateLimited},
		{"network", "", errors.New("dial tcp: connection refused"), ReasonTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockContentGenerator)
			gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(tt.text, tt.err).Once()

			outcome := newTestGenerator(gen, config.AIConfig{Timeout: time.Second}).Generate(context.Background(), testPromptInput())
			require.NotNil(t, outcome.Failure)
			assert.Equal(t, tt.reason, outcome.Failure.Reason)
			assert.Nil(t, outcome.Payload)
		})
	}
}

func TestItineraryGenerator_RateLimited(t *testing.T) {
	gen := new(MockContentGenerator)
	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(`{"trip_name":"first"}`, nil).Once()

	g := newTestGenerator(gen, config.AIConfig{Timeout: 50 * time.Millisecond, RequestsPerMinute: 1})

	first := g.Generate(context.Background(), testPromptInput())
	require.True(t, first.OK())

	second := g.Generate(context.Background(), testPromptInput())
	require.NotNil(t, second.Failure)
	assert.Equal(t, ReasonRateLimited, second.Failure.Reason)
	gen.AssertExpectations(t)
}
