// Package fetch provides URL fetching and HTML-to-text processing for job
// posting pages. Requests are sent with browser-like headers because many job
// boards reject non-browser clients outright.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// retryDelay returns a jittered pause before the single transport retry.
func retryDelay() time.Duration {
	return 250*time.Millisecond + time.Duration(rand.Int63n(int64(250*time.Millisecond)))
}

// DefaultUserAgent is a realistic browser user agent. Job boards commonly
// block obvious bot agents with a 403 or an empty shell page.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultAccept mirrors what a browser sends for a page navigation.
const DefaultAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8"

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns browser-like defaults for fetching job pages.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Headers: map[string]string{
			"Accept":     DefaultAccept,
			"Connection": "keep-alive",
		},
	}
}

// URL retrieves HTML content from a URL. The context carries the caller's
// deadline and cancellation: a disconnected client aborts the request rather
// than letting it complete and be discarded.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := &http.Client{
		Timeout: opts.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		// One retry with jitter for transport failures only. Anti-bot
		// responses arrive as HTTP statuses and are never retried.
		select {
		case <-ctx.Done():
			return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
		case <-time.After(retryDelay()):
		}
		resp, err = client.Do(req)
		if err != nil {
			return nil, &Error{
				URL:     urlStr,
				Message: "HTTP request failed",
				Cause:   err,
			}
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	return result, nil
}

// noiseElements are stripped from every page before text extraction.
const noiseElements = "script, style, nav, footer, header, aside, iframe, noscript"

var whitespaceRuns = regexp.MustCompile(`\s+`)

// ExtractMainText parses HTML, removes non-content elements, and returns the
// remaining text with whitespace runs collapsed to single spaces.
// contentSelectors are tried in order; if none match, the body element is used.
// noiseSelectors add platform-specific elements to the removal pass.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseElements).Remove()

	if len(noiseSelectors) > 0 {
		if selector := strings.Join(noiseSelectors, ", "); selector != "" {
			doc.Find(selector).Remove()
		}
	}

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}

	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	return CollapseWhitespace(mainContent.Text()), nil
}

// CollapseWhitespace reduces all whitespace runs to single spaces and trims.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))
}

// JobPostingSelectors returns selectors optimized for job board pages.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}
