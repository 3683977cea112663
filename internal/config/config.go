// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds everything the server needs to run. APIKey is the only
// required value; the rest default sensibly.
type Config struct {
	// Server
	Port int `validate:"min=1,max=65535"`

	// Generation
	APIKey string `validate:"required"`

	// Scraping
	UseBrowser bool

	// Collaborators
	JobSearchURL string `validate:"omitempty,url"`

	// Identity. When empty, bearer tokens are passed through undecoded.
	JWTSecret string
}

const defaultPort = 3000

// FromEnv builds a Config from environment variables and validates it.
// GEMINI_API_KEY must be set; there is no embedded fallback.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         defaultPort,
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		JobSearchURL: os.Getenv("JOB_SEARCH_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
	}

	if port := os.Getenv("PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("config error: invalid PORT %q: %w", port, err)
		}
		cfg.Port = n
	}

	if v := os.Getenv("USE_BROWSER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("config error: invalid USE_BROWSER %q: %w", v, err)
		}
		cfg.UseBrowser = b
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration. It fails fast when the API key is
// missing so the server never starts half-configured.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is not set")
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
