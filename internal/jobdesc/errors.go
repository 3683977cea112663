// Package jobdesc resolves a job description from either pasted text or a
// job posting URL.
package jobdesc

import "fmt"

// ScrapingBlockedError indicates a URL scrape failed: network error, non-2xx
// status, or an anti-bot page. Not retried automatically; the user-actionable
// fix is to paste the description text instead.
type ScrapingBlockedError struct {
	URL   string
	Cause error
}

func (e *ScrapingBlockedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scraping blocked for %s: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("scraping blocked for %s", e.URL)
}

func (e *ScrapingBlockedError) Unwrap() error {
	return e.Cause
}

// InsufficientContentError indicates the job description resolved to fewer
// than MinUsableLength usable characters. Distinct from ScrapingBlocked: for a
// URL source the page loaded but had no recognizable job text (typically a
// JS-only shell); for a text source the paste was too short.
type InsufficientContentError struct {
	Source string // "text" or "url"
	Length int
}

func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("insufficient job description content from %s: %d usable characters (minimum %d)",
		e.Source, e.Length, MinUsableLength)
}
