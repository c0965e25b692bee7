package mcp

import (
	"errors"
	"fmt"

	"github.com/halcyra/cadence/internal/app"
	"github.com/halcyra/cadence/internal/domain/series"
	"github.com/halcyra/cadence/internal/remote"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, series.ErrScopeRequired):
		return &APIError{Code: "SCOPE_REQUIRED", Message: "the target belongs to a series", RecoveryHint: "Retry with scope set to this, following or all"}
	case errors.Is(err, series.ErrUnknownScope):
		return &APIError{Code: "UNKNOWN_SCOPE", Message: "unrecognized scope value", RecoveryHint: "Use this, following or all"}
	case errors.Is(err, series.ErrChoiceInProgress):
		return &APIError{Code: "CHOICE_IN_PROGRESS", Message: "another action is awaiting a scope choice", RecoveryHint: "Call choose_scope or cancel_scope first"}
	case errors.Is(err, series.ErrNoPendingChoice):
		return &APIError{Code: "NO_PENDING_CHOICE", Message: "no action is awaiting a scope choice", RecoveryHint: "Start with save_event or delete_event"}
	case errors.Is(err, app.ErrEventNotFound):
		return &APIError{Code: "EVENT_NOT_FOUND", Message: "event not found", RecoveryHint: "Check the ID against list_events"}
	case errors.Is(err, remote.ErrNotFound):
		return &APIError{Code: "EVENT_NOT_FOUND", Message: "event not found on the server", RecoveryHint: "Refresh and retry"}
	case errors.Is(err, remote.ErrUnavailable):
		return &APIError{Code: "STORE_UNAVAILABLE", Message: "event store unreachable", RecoveryHint: "Retry later"}
	default:
		return nil
	}
}

// toolError wraps a domain error for the wire, falling back to the raw
// error when no MCP code applies.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
