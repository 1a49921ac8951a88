package types

import "errors"

// Domain specific errors for route generation and voice chat.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrInvalidAIOutput     = errors.New("invalid AI output")
	ErrEmptyAIResponse     = errors.New("empty response from AI")
	ErrAIClientUnavailable = errors.New("AI client is not available - check API key configuration")
	ErrTTSUnavailable      = errors.New("speech synthesis is not configured")
	ErrUpstreamStatus      = errors.New("upstream returned non-success status")
)

// User-facing messages. Every failure on an endpoint collapses to one of these.
const (
	MsgRouteFailed = "Failed to generate route."
	MsgVoiceFailed = "Voice processing failed"
)
