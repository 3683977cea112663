package tailoring

import "fmt"

// MissingInputError indicates a required request input was absent. Checked
// before any extraction, scraping, or generation work happens.
type MissingInputError struct {
	Field   string
	Message string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input %s: %s", e.Field, e.Message)
}

// MalformedOutputError indicates the model's response could not be coerced
// into the expected JSON contract: either it was not JSON at all or it failed
// schema validation. Terminal for the request; the fix is usually a fresh
// attempt, not a code change.
//
// Raw retains the original model text for server-side diagnostics only. It is
// deliberately excluded from Error() so it can never leak into a client-facing
// message.
type MalformedOutputError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *MalformedOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model output: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed model output: %s", e.Message)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Cause
}
