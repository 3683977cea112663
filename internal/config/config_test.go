package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "8080")
	t.Setenv("USE_BROWSER", "true")
	t.Setenv("JOB_SEARCH_URL", "https://example.com/search")
	t.Setenv("JWT_SECRET", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, "https://example.com/search", cfg.JobSearchURL)
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("USE_BROWSER", "")
	t.Setenv("JOB_SEARCH_URL", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.False(t, cfg.UseBrowser)
}

func TestFromEnv_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestFromEnv_InvalidPort(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "not-a-port")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{Port: 70000, APIKey: "k"}
	assert.Error(t, cfg.Validate())

	cfg.Port = 3000
	assert.NoError(t, cfg.Validate())
}

func TestValidate_BadJobSearchURL(t *testing.T) {
	cfg := &Config{Port: 3000, APIKey: "k", JobSearchURL: "not a url"}
	assert.Error(t, cfg.Validate())
}
