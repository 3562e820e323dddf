package types

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable, machine-readable class of a planning failure.
type ErrorKind string

const (
	KindInvalidRequest         ErrorKind = "invalid_request"
	KindNotFound               ErrorKind = "not_found"
	KindUnauthorized           ErrorKind = "unauthorized"
	KindExternalServiceFailure ErrorKind = "external_service_failure"
	KindNormalizationFailure   ErrorKind = "normalization_failure"
)

// Reasons qualify KindInvalidRequest.
const (
	ReasonMissingField   = "missing-field"
	ReasonBadDateRange   = "bad-date-range"
	ReasonBadDestination = "bad-destination"
	ReasonBadBudget      = "bad-budget"
	ReasonBadPlan        = "bad-plan"
	ReasonFinalized      = "finalized"
	ReasonMalformedBody  = "malformed-body"
)

type PlanError struct {
	Kind    ErrorKind
	Reason  string
	Message string
	Cause   error
}

func (e *PlanError) Error() string {
	msg := string(e.Kind)
	if e.Reason != "" {
		msg += "/" + e.Reason
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *PlanError) Unwrap() error {
	return e.Cause
}

// Is matches any PlanError of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of message or reason.
func (e *PlanError) Is(target error) bool {
	var pe *PlanError
	if errors.As(target, &pe) {
		return pe.Kind == e.Kind && (pe.Reason == "" || pe.Reason == e.Reason)
	}
	return false
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidRequest       = &PlanError{Kind: KindInvalidRequest}
	ErrNotFound             = &PlanError{Kind: KindNotFound}
	ErrUnauthorized         = &PlanError{Kind: KindUnauthorized}
	ErrExternalService      = &PlanError{Kind: KindExternalServiceFailure}
	ErrNormalizationFailure = &PlanError{Kind: KindNormalizationFailure}
)

func InvalidRequest(reason, format string, args ...any) *PlanError {
	return &PlanError{Kind: KindInvalidRequest, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *PlanError {
	return &PlanError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *PlanError {
	return &PlanError{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func NormalizationFailure(cause error, format string, args ...any) *PlanError {
	return &PlanError{Kind: KindNormalizationFailure, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// AsPlanError extracts the PlanError in err's chain, if any.
func AsPlanError(err error) (*PlanError, bool) {
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
