package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-tailor/internal/extraction"
	"github.com/jonathan/resume-tailor/internal/jobdesc"
	"github.com/jonathan/resume-tailor/internal/tailoring"
)

// CodeScrapingFailed marks 403 responses caused by a blocked job URL,
// so clients can prompt the user to paste the text instead.
const CodeScrapingFailed = "SCRAPING_FAILED"

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		missingInput *tailoring.MissingInputError
		unreadable   *extraction.UnreadablePDFError
		insufficient *jobdesc.InsufficientContentError
		blocked      *jobdesc.ScrapingBlockedError
	)
	switch {
	case errors.As(err, &missingInput),
		errors.As(err, &unreadable),
		errors.As(err, &insufficient):
		return http.StatusBadRequest
	case errors.As(err, &blocked):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage returns the message sent to clients for an error.
// Internal failures get a generic message; raw model output and
// upstream details never leave the server.
func clientMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusForbidden:
		return "Access to this job site is restricted by security bots."
	default:
		return "Failed to process the request."
	}
}
