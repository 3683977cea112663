package jobdesc

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-tailor/internal/fetch"
)

const (
	// MinUsableLength is the minimum number of usable characters a job
	// description must have after normalization.
	MinUsableLength = 50
	// MaxLength caps the resolved description before it reaches any prompt,
	// bounding prompt cost and model context use.
	MaxLength = 15000
)

// Kind discriminates the two job description input sources.
type Kind string

const (
	// KindText is a pasted job description
	KindText Kind = "text"
	// KindURL is a job posting URL to scrape
	KindURL Kind = "url"
)

// Input is a tagged union: exactly one of Body (kind=text) or Address
// (kind=url) must be set.
type Input struct {
	Kind    Kind
	Body    string
	Address string
}

// TextInput builds a pasted-text input.
func TextInput(body string) Input {
	return Input{Kind: KindText, Body: body}
}

// URLInput builds a scrape-from-URL input.
func URLInput(address string) Input {
	return Input{Kind: KindURL, Address: address}
}

// Validate checks the tagged-union invariant.
func (in Input) Validate() error {
	switch in.Kind {
	case KindText:
		if in.Body == "" {
			return fmt.Errorf("job description text is empty")
		}
	case KindURL:
		if in.Address == "" {
			return fmt.Errorf("job URL is empty")
		}
	default:
		return fmt.Errorf("unknown job description input kind %q", in.Kind)
	}
	return nil
}

// Options configures the resolver.
type Options struct {
	// Fetch overrides fetch behavior (timeout, headers). Nil uses defaults.
	Fetch *fetch.Options
	// UseBrowser enables a headless browser re-render when a fetched page
	// yields under-threshold text. Requires Chrome on the host.
	UseBrowser bool
}

// Resolver turns an Input into a bounded plain-text job description.
type Resolver struct {
	opts Options
}

// NewResolver creates a Resolver.
func NewResolver(opts Options) *Resolver {
	return &Resolver{opts: opts}
}

// Resolve produces the plain-text job description for an input.
//
// Text inputs pass through with whitespace normalization only. URL inputs are
// fetched with browser-like headers, stripped of non-content elements, and
// truncated to MaxLength. A failed fetch is ScrapingBlocked; a fetched page
// with under MinUsableLength usable characters is InsufficientContent.
func (r *Resolver) Resolve(ctx context.Context, input Input) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	switch input.Kind {
	case KindText:
		return r.resolveText(input.Body)
	case KindURL:
		return r.resolveURL(ctx, input.Address)
	default:
		return "", fmt.Errorf("unknown job description input kind %q", input.Kind)
	}
}

func (r *Resolver) resolveText(body string) (string, error) {
	text := fetch.CollapseWhitespace(body)
	if len(text) < MinUsableLength {
		return "", &InsufficientContentError{Source: string(KindText), Length: len(text)}
	}
	return text, nil
}

func (r *Resolver) resolveURL(ctx context.Context, address string) (string, error) {
	result, err := fetch.URL(ctx, address, r.opts.Fetch)
	if err != nil {
		return "", &ScrapingBlockedError{URL: address, Cause: err}
	}

	platform := fetch.DetectPlatform(address)
	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", &ScrapingBlockedError{URL: address, Cause: err}
	}

	if r.opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		log.Printf("[scrape] %s yielded %d chars, retrying with browser rendering", address, len(text))
		if html, browserErr := fetch.WithBrowser(ctx, address, fetch.DefaultTimeout); browserErr == nil {
			if rendered, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); extractErr == nil {
				text = rendered
			}
		}
		// Browser failures fall through to the HTTP-fetched content.
	}

	if len(text) < MinUsableLength {
		return "", &InsufficientContentError{Source: string(KindURL), Length: len(text)}
	}

	return Truncate(text), nil
}

// Truncate enforces the MaxLength cap on a resolved description.
func Truncate(text string) string {
	if len(text) > MaxLength {
		return text[:MaxLength]
	}
	return text
}
