//go:build integration

package generativeAI

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/config"
)

func integrationConfig(t *testing.T) config.AIConfig {
	t.Helper()
	apiKey := os.Getenv("TRIP_AI_APIKEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: TRIP_AI_APIKEY not set")
	}
	return config.AIConfig{
		APIKey:      apiKey,
		Model:       "gemini-2.0-flash",
		Timeout:     60 * time.Second,
		MaxAttempts: 2,
		Temperature: 0.2,
	}
}

func TestNewAIClient_Integration(t *testing.T) {
	cfg := integrationConfig(t)

	client, err := NewAIClient(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", client.Model())
}

func TestNewAIClient_MissingKey(t *testing.T) {
	_, err := NewAIClient(context.Background(), config.AIConfig{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestItineraryGenerator_Integration(t *testing.T) {
	cfg := integrationConfig(t)
	ctx := context.Background()

	client, err := NewAIClient(ctx, cfg)
	require.NoError(t, err)

	g := NewItineraryGenerator(client, cfg, slog.New(slog.NewTextHandler(os.Stdout, nil)))
	outcome := g.Generate(ctx, testPromptInput())
	require.True(t, outcome.OK(), "generation failed: %v", outcome.Failure)

	_, hasPlan := outcome.Payload["daily_plan"]
	assert.True(t, hasPlan)
}
