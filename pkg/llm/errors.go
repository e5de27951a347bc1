package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

// ErrorType classifies provider failures for response shaping. The one
// distinction that must survive to the user is auth (misconfigured
// credentials) vs everything else.
type ErrorType string

const (
	ErrorTypeAuth      ErrorType = "auth"
	ErrorTypeRateLimit ErrorType = "rate_limit"
	ErrorTypeServer    ErrorType = "server"
	ErrorTypeNetwork   ErrorType = "network"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// Error is a classified LLM failure.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s HTTP %d %s: %v", e.Type, e.StatusCode, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Type, e.Message, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsAuth reports whether err is a credentials failure.
func IsAuth(err error) bool {
	var llmErr *Error
	return errors.As(err, &llmErr) && llmErr.Type == ErrorTypeAuth
}

// ClassifyError categorizes a provider error into a structured *Error.
// Typed anthropic errors are inspected first; anything else falls back to
// string matching.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch string(apiErr.Type) {
		case "authentication_error", "permission_error":
			return &Error{Type: ErrorTypeAuth, Message: "authentication failed", Cause: err}
		case "rate_limit_error":
			return &Error{Type: ErrorTypeRateLimit, Message: "rate limited", Cause: err}
		case "overloaded_error", "api_error":
			return &Error{Type: ErrorTypeServer, Message: "provider error", Cause: err}
		default:
			return &Error{Type: ErrorTypeUnknown, Message: string(apiErr.Type), Cause: err}
		}
	}

	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.StatusCode == 401 || reqErr.StatusCode == 403:
			return &Error{Type: ErrorTypeAuth, Message: "authentication failed", StatusCode: reqErr.StatusCode, Cause: err}
		case reqErr.StatusCode == 429:
			return &Error{Type: ErrorTypeRateLimit, Message: "rate limited", StatusCode: reqErr.StatusCode, Cause: err}
		case reqErr.StatusCode >= 500:
			return &Error{Type: ErrorTypeServer, Message: "provider error", StatusCode: reqErr.StatusCode, Cause: err}
		}
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "401") || strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "authentication") || strings.Contains(lower, "api key"):
		return &Error{Type: ErrorTypeAuth, Message: "authentication failed", Cause: err}
	case strings.Contains(lower, "429") || strings.Contains(lower, "rate limit"):
		return &Error{Type: ErrorTypeRateLimit, Message: "rate limited", Cause: err}
	case strings.Contains(lower, "connection refused") || strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "no such host"):
		return &Error{Type: ErrorTypeNetwork, Message: "network failure", Cause: err}
	default:
		return &Error{Type: ErrorTypeUnknown, Message: "request failed", Cause: err}
	}
}
