package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	for _, k := range []string{"PORT", "RUN_MODE", "FAST_MODEL", "THINKING_MODEL", "AGENT_VERBOSE",
		"WIKIPEDIA_LANG", "WIKIPEDIA_MAX_RESULTS", "WIKIPEDIA_MAX_CHARS", "MCP_ENDPOINT", "MCP_TOKEN"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GoogleAPIKey)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, RunModeHTTP, cfg.RunMode)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.FastModel)
	assert.Equal(t, "gemini-2.5-flash", cfg.ThinkingModel)
	assert.Equal(t, "en", cfg.WikipediaLang)
	assert.Equal(t, 3, cfg.WikipediaMaxResults)
	assert.Equal(t, 4000, cfg.WikipediaMaxChars)
	assert.False(t, cfg.AgentVerbose)
	assert.Empty(t, cfg.McpEndpoint)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "5000")
	t.Setenv("RUN_MODE", "Console")
	t.Setenv("AGENT_VERBOSE", "true")
	t.Setenv("WIKIPEDIA_MAX_RESULTS", "5")
	t.Setenv("WIKIPEDIA_MAX_CHARS", "1200")
	t.Setenv("MCP_ENDPOINT", "http://localhost:9000/mcp")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, RunModeConsole, cfg.RunMode)
	assert.True(t, cfg.AgentVerbose)
	assert.Equal(t, 5, cfg.WikipediaMaxResults)
	assert.Equal(t, 1200, cfg.WikipediaMaxChars)
	assert.Equal(t, "http://localhost:9000/mcp", cfg.McpEndpoint)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"missing api key", "GOOGLE_API_KEY", ""},
		{"bad run mode", "RUN_MODE", "daemon"},
		{"bad verbose flag", "AGENT_VERBOSE", "maybe"},
		{"non numeric max results", "WIKIPEDIA_MAX_RESULTS", "three"},
		{"zero max chars", "WIKIPEDIA_MAX_CHARS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
