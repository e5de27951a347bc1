package llm

import (
	"errors"
	"testing"
)

func TestClassifyError_Nil(t *testing.T) {
	if got := ClassifyError(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestClassifyError_AuthStrings(t *testing.T) {
	cases := []string{
		"401 unauthorized",
		"invalid api key provided",
		"authentication_error: bad credentials",
	}
	for _, msg := range cases {
		err := ClassifyError(errors.New(msg))
		if !IsAuth(err) {
			t.Errorf("expected auth classification for %q, got %v", msg, err)
		}
	}
}

func TestClassifyError_RateLimit(t *testing.T) {
	err := ClassifyError(errors.New("429 rate limit exceeded"))
	var llmErr *Error
	if !errors.As(err, &llmErr) || llmErr.Type != ErrorTypeRateLimit {
		t.Errorf("expected rate limit classification, got %v", err)
	}
	if IsAuth(err) {
		t.Error("rate limit must not classify as auth")
	}
}

func TestClassifyError_Network(t *testing.T) {
	err := ClassifyError(errors.New("dial tcp: connection refused"))
	var llmErr *Error
	if !errors.As(err, &llmErr) || llmErr.Type != ErrorTypeNetwork {
		t.Errorf("expected network classification, got %v", err)
	}
}

func TestClassifyError_Unknown(t *testing.T) {
	err := ClassifyError(errors.New("something odd happened"))
	var llmErr *Error
	if !errors.As(err, &llmErr) || llmErr.Type != ErrorTypeUnknown {
		t.Errorf("expected unknown classification, got %v", err)
	}
}

func TestClassifyError_AlreadyClassified(t *testing.T) {
	orig := &Error{Type: ErrorTypeAuth, Message: "authentication failed"}
	if got := ClassifyError(orig); got != error(orig) {
		t.Errorf("already-classified errors must pass through, got %v", got)
	}
}

func TestClassifyError_Unwrap(t *testing.T) {
	cause := errors.New("upstream detail")
	err := ClassifyError(cause)
	if !errors.Is(err, cause) {
		t.Error("classified error must unwrap to its cause")
	}
}
