package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrTimeout marks calls that exceeded their deadline before the provider
// answered.
var ErrTimeout = errors.New("llm: call timed out")

// UpstreamError carries the provider's own failure back to the caller
// without leaking it to end users.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm: upstream error (status %d): %s", e.StatusCode, e.Body)
}

// Outcome classifies a completed call for logging and metrics.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeTimeout  Outcome = "timeout"
	OutcomeUpstream Outcome = "upstream-error"
)

// Classify maps an error from Chat/Generate onto an Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	default:
		return OutcomeUpstream
	}
}
