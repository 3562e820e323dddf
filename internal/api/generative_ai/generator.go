package generativeAI

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/config"
)

// apiStatusPattern matches the status code genai puts in API error messages.
var apiStatusPattern = regexp.MustCompile(`Error (\d{3}),`)

// ItineraryGenerator asks the model for an itinerary and reports the result as a
// GenerationOutcome. It never returns an error: every failure is classified.
type ItineraryGenerator struct {
	gen     ContentGenerator
	cfg     config.AIConfig
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewItineraryGenerator wraps gen with the configured timeout, attempt count and
// client-side rate limit. A non-positive RequestsPerMinute disables the limiter.
func NewItineraryGenerator(gen ContentGenerator, cfg config.AIConfig, logger *slog.Logger) *ItineraryGenerator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	return &ItineraryGenerator{
		gen:     gen,
		cfg:     cfg,
		limiter: limiter,
		logger:  logger,
	}
}

// Generate runs up to MaxAttempts generation attempts, each bounded by the configured timeout.
func (g *ItineraryGenerator) Generate(ctx context.Context, in PromptInput) GenerationOutcome {
	ctx, span := otel.Tracer("ItineraryGenerator").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("destination", in.Destination),
		attribute.Int("total_days", in.TotalDays),
		attribute.Int("max_attempts", g.cfg.MaxAttempts),
	))
	defer span.End()

	l := g.logger.With(slog.String("method", "Generate"), slog.String("destination", in.Destination))
	prompt := generateItineraryPrompt(in)

	var outcome GenerationOutcome
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		outcome = g.attempt(ctx, prompt)
		outcome.Attempts = attempt
		if outcome.OK() {
			l.DebugContext(ctx, "AI itinerary generated", slog.Int("attempt", attempt))
			span.SetStatus(codes.Ok, "itinerary generated")
			return outcome
		}
		l.WarnContext(ctx, "AI itinerary attempt failed",
			slog.Int("attempt", attempt),
			slog.String("reason", string(outcome.Failure.Reason)),
			slog.Any("error", outcome.Failure.Err))
		if ctx.Err() != nil {
			break
		}
	}

	span.RecordError(outcome.Failure)
	span.SetStatus(codes.Error, string(outcome.Failure.Reason))
	return outcome
}

func (g *ItineraryGenerator) attempt(parent context.Context, prompt string) GenerationOutcome {
	ctx, cancel := context.WithTimeout(parent, g.cfg.Timeout)
	defer cancel()

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return Failed(ReasonRateLimited, fmt.Errorf("rate limiter: %w", err))
		}
	}

	text, err := g.gen.GenerateContent(ctx, prompt, g.contentConfig())
	if err != nil {
		return Failed(classifyError(ctx, err), err)
	}

	cleaned := cleanJSONResponse(text)
	if cleaned == "" {
		return Failed(ReasonEmptyResponse, errors.New("model returned no content"))
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return Failed(ReasonUnparsable, fmt.Errorf("failed to parse model output: %w", err))
	}
	if payload == nil {
		return Failed(ReasonUnparsable, errors.New("model output is not a JSON object"))
	}
	return Succeeded(payload, cleaned)
}

func (g *ItineraryGenerator) contentConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	if g.cfg.Temperature > 0 {
		cfg.Temperature = genai.Ptr[float32](g.cfg.Temperature)
	}
	return cfg
}

func classifyError(ctx context.Context, err error) FailureReason {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ReasonTimeout
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return statusReason(apiErr.Code)
	}
	if m := apiStatusPattern.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		return statusReason(code)
	}
	if strings.Contains(err.Error(), "RESOURCE_EXHAUSTED") {
		return ReasonRateLimited
	}
	return ReasonTransport
}

func statusReason(code int) FailureReason {
	if code == 429 {
		return ReasonRateLimited
	}
	return ReasonBadStatus
}
