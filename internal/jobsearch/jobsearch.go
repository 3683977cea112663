// Package jobsearch queries an external job aggregator and normalizes
// its listings into a stable shape for API consumers.
package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-tailor/internal/fetch"
)

// Listing is a normalized job posting. Title, Company, Location, Type,
// and ApplyLink are always populated; the rest are best-effort.
type Listing struct {
	ID        int64    `json:"id,omitempty"`
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	Location  string   `json:"location"`
	Type      string   `json:"type"`
	Salary    string   `json:"salary,omitempty"`
	Posted    string   `json:"posted,omitempty"`
	ApplyLink string   `json:"applyLink"`
	Logo      string   `json:"logo,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// SearchRequest carries the user's search parameters. Type is a coarse
// filter applied after normalization.
type SearchRequest struct {
	Query    string `json:"query" validate:"omitempty,max=200"`
	Location string `json:"location" validate:"omitempty,max=200"`
	Type     string `json:"type" validate:"omitempty,oneof=All Remote Full-time Contract"`
}

// Searcher finds job listings matching a request.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) ([]Listing, error)
}

// Error wraps a failed aggregator call.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job search failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job search failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

const (
	// DefaultBaseURL is the aggregator search endpoint.
	DefaultBaseURL = "https://unstop.com/api/public/opportunity/search-result"

	defaultPerPage = 50
	defaultTimeout = 30 * time.Second
)

var validate = validator.New()

// Client queries the aggregator API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client against baseURL. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// rawListing mirrors the aggregator's list-view payload. Fields we do
// not consume are omitted.
type rawListing struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	SeoURL    string `json:"seo_url"`
	JobLoc    string `json:"job_location"`
	TypeField string `json:"type"`
	JobDetail *struct {
		Locations []string `json:"locations"`
		Timing    string   `json:"timing"`
	} `json:"jobDetail"`
	Organisation *struct {
		Name    string `json:"name"`
		LogoURL string `json:"logoUrl"`
	} `json:"organisation"`
	LogoURL string `json:"logoUrl"`
}

type searchResponse struct {
	Data struct {
		Data []rawListing `json:"data"`
	} `json:"data"`
}

// Search fetches open listings, normalizes them, and applies the
// request's type filter client-side.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Listing, error) {
	if err := validate.Struct(req); err != nil {
		return nil, &Error{Message: "invalid search request", Cause: err}
	}

	params := url.Values{}
	params.Set("opportunity", "jobs")
	params.Set("page", "1")
	params.Set("per_page", fmt.Sprintf("%d", defaultPerPage))
	params.Set("oppstatus", "open")
	if req.Query != "" {
		params.Set("searchTerm", req.Query)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &Error{Message: "building request", Cause: err}
	}
	httpReq.Header.Set("Accept", "application/json, text/plain, */*")
	httpReq.Header.Set("User-Agent", fetch.DefaultUserAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Message: "aggregator unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Message: fmt.Sprintf("aggregator returned HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: "reading response", Cause: err}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{Message: "decoding response", Cause: err}
	}

	listings := make([]Listing, 0, len(parsed.Data.Data))
	for _, raw := range parsed.Data.Data {
		listings = append(listings, normalize(raw))
	}
	return FilterByType(listings, req.Type), nil
}

// normalize maps one raw aggregator record into a Listing, filling
// fallbacks for the fields the list view often omits.
func normalize(raw rawListing) Listing {
	location := "Remote"
	if raw.JobDetail != nil && len(raw.JobDetail.Locations) > 0 {
		location = raw.JobDetail.Locations[0]
	} else if raw.JobLoc != "" {
		location = raw.JobLoc
	}

	typeRaw := "Full-time"
	if raw.JobDetail != nil && raw.JobDetail.Timing != "" {
		typeRaw = raw.JobDetail.Timing
	} else if raw.TypeField != "" {
		typeRaw = raw.TypeField
	}

	company := "Top Company"
	logo := raw.LogoURL
	if raw.Organisation != nil {
		if raw.Organisation.Name != "" {
			company = raw.Organisation.Name
		}
		if raw.Organisation.LogoURL != "" {
			logo = raw.Organisation.LogoURL
		}
	}

	applyLink := "#"
	if raw.SeoURL != "" {
		applyLink = raw.SeoURL
		if !strings.HasPrefix(applyLink, "http") {
			applyLink = "https://unstop.com/" + applyLink
		}
	}

	return Listing{
		ID:        raw.ID,
		Title:     raw.Title,
		Company:   company,
		Location:  location,
		Type:      TitleizeType(typeRaw),
		Salary:    "Competitive",
		Posted:    "Recently",
		ApplyLink: applyLink,
		Logo:      logo,
		Tags:      []string{"Verified", "Hiring"},
	}
}

// TitleizeType rewrites aggregator employment types into display form,
// e.g. "full_time" becomes "Full Time".
func TitleizeType(raw string) string {
	raw = strings.ReplaceAll(raw, "_", " ")
	words := strings.Fields(raw)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// FilterByType keeps listings matching the coarse type filter. An empty
// or "All" filter keeps everything; unrecognized filters do too.
func FilterByType(listings []Listing, filter string) []Listing {
	if filter == "" || filter == "All" {
		return listings
	}

	kept := make([]Listing, 0, len(listings))
	for _, l := range listings {
		typeLower := strings.ToLower(l.Type)
		locLower := strings.ToLower(l.Location)

		keep := true
		switch filter {
		case "Remote":
			keep = strings.Contains(locLower, "remote") ||
				strings.Contains(typeLower, "remote") ||
				strings.Contains(locLower, "work from home")
		case "Full-time":
			keep = strings.Contains(typeLower, "full") || strings.Contains(typeLower, "permanent")
		case "Contract":
			keep = strings.Contains(typeLower, "contract") ||
				strings.Contains(typeLower, "temp") ||
				strings.Contains(typeLower, "intern")
		}
		if keep {
			kept = append(kept, l)
		}
	}
	return kept
}
