package generativeAI

import "fmt"

// FailureReason classifies why a generation attempt produced no usable payload.
type FailureReason string

const (
	ReasonTimeout       FailureReason = "timeout"
	ReasonTransport     FailureReason = "transport"
	ReasonBadStatus     FailureReason = "bad_status"
	ReasonEmptyResponse FailureReason = "empty_response"
	ReasonUnparsable    FailureReason = "unparsable"
	ReasonRateLimited   FailureReason = "rate_limited"
	ReasonUnavailable   FailureReason = "unavailable"
)

type Failure struct {
	Reason FailureReason
	Err    error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return string(f.Reason)
	}
	return fmt.Sprintf("%s: %v", f.Reason, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// GenerationOutcome is either a decoded JSON object or a recoverable failure.
// Exactly one of Payload and Failure is set.
type GenerationOutcome struct {
	Payload  map[string]any
	Raw      string
	Failure  *Failure
	Attempts int
}

func (o GenerationOutcome) OK() bool {
	return o.Failure == nil && o.Payload != nil
}

func Succeeded(payload map[string]any, raw string) GenerationOutcome {
	return GenerationOutcome{Payload: payload, Raw: raw}
}

func Failed(reason FailureReason, err error) GenerationOutcome {
	return GenerationOutcome{Failure: &Failure{Reason: reason, Err: err}}
}
