package llm

import "fmt"

// UpstreamError classifies any transport error, non-2xx status, or malformed
// response envelope from the generation provider. Not retried inside the
// client: generation calls are costly and slow, and the orchestrator owns the
// surface-or-degrade decision.
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation provider unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation provider unavailable: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
