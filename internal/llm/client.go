package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DefaultCallTimeout bounds a single generation call so a hung provider
// cannot hold a request open indefinitely.
const DefaultCallTimeout = 120 * time.Second

// Client is an abstraction over LLM providers
type Client interface {
	// Generate produces text content for a prompt using the specified model tier
	Generate(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey, DefaultCallTimeout)
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client      *genai.Client
	config      *Config
	callTimeout time.Duration
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string, callTimeout time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		config:      config,
		callTimeout: callTimeout,
	}, nil
}

// Generate produces text content for a prompt. A failed generation is
// classified as an *UpstreamError and, beyond a single transport-level retry,
// the caller decides what to do. The call timeout is layered over ctx so
// client disconnects still cancel the in-flight request.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil && isTransient(err) {
		// One retry with jitter for transport-level failures. Semantic
		// failures (4xx, malformed output) are never retried.
		select {
		case <-ctx.Done():
		case <-time.After(retryDelay()):
			resp, err = model.GenerateContent(ctx, genai.Text(prompt))
		}
	}
	if err != nil {
		return "", &UpstreamError{Message: "generate content call failed", Cause: err}
	}

	return extractTextFromResponse(resp)
}

// isTransient reports whether a provider error is worth one retry: server-side
// failures and transport errors, never client errors.
func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500
	}
	// Non-API errors are transport-level (DNS, connection reset).
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// retryDelay returns a jittered pause before the single retry.
func retryDelay() time.Duration {
	return 500*time.Millisecond + time.Duration(rand.Int63n(int64(500*time.Millisecond)))
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from the Gemini response envelope.
// An empty or malformed envelope is an upstream contract violation, not a
// client bug, so it classifies the same as a transport failure.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &UpstreamError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &UpstreamError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &UpstreamError{Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
