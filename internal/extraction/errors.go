// Package extraction converts uploaded resume PDFs into plain text.
package extraction

import "fmt"

// UnreadablePDFError indicates the uploaded bytes could not be parsed as a PDF
// (corrupt file, wrong format, or encrypted). The condition is terminal for the
// request: the cause is the input itself, not a transient failure.
type UnreadablePDFError struct {
	Message string
	Cause   error
}

func (e *UnreadablePDFError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unreadable PDF: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("unreadable PDF: %s", e.Message)
}

func (e *UnreadablePDFError) Unwrap() error {
	return e.Cause
}
