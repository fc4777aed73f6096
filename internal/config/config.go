package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RunMode define como o binário é executado
type RunMode string

const (
	RunModeHTTP    RunMode = "http"
	RunModeConsole RunMode = "console"
)

// Config reúne toda a configuração lida do ambiente na inicialização.
// É passada explicitamente aos construtores; nada é lido de estado global depois disso.
type Config struct {
	Port    string
	RunMode RunMode

	GoogleAPIKey  string
	FastModel     string
	ThinkingModel string
	AgentVerbose  bool

	WikipediaLang       string
	WikipediaMaxResults int
	WikipediaMaxChars   int

	McpEndpoint string
	McpToken    string
}

// Load lê as variáveis de ambiente e aplica os valores padrão
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		RunMode:             RunMode(strings.ToLower(getEnv("RUN_MODE", string(RunModeHTTP)))),
		GoogleAPIKey:        os.Getenv("GOOGLE_API_KEY"),
		FastModel:           getEnv("FAST_MODEL", "gemini-2.5-flash-lite"),
		ThinkingModel:       getEnv("THINKING_MODEL", "gemini-2.5-flash"),
		WikipediaLang:       getEnv("WIKIPEDIA_LANG", "en"),
		McpEndpoint:         os.Getenv("MCP_ENDPOINT"),
		McpToken:            os.Getenv("MCP_TOKEN"),
		WikipediaMaxResults: 3,
		WikipediaMaxChars:   4000,
	}

	if cfg.GoogleAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is not set")
	}

	switch cfg.RunMode {
	case RunModeHTTP, RunModeConsole:
	default:
		return nil, fmt.Errorf("invalid RUN_MODE %q (expected %q or %q)", cfg.RunMode, RunModeHTTP, RunModeConsole)
	}

	var err error
	if cfg.AgentVerbose, err = getBool("AGENT_VERBOSE", false); err != nil {
		return nil, err
	}
	if cfg.WikipediaMaxResults, err = getPositiveInt("WIKIPEDIA_MAX_RESULTS", cfg.WikipediaMaxResults); err != nil {
		return nil, err
	}
	if cfg.WikipediaMaxChars, err = getPositiveInt("WIKIPEDIA_MAX_CHARS", cfg.WikipediaMaxChars); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr retorna o endereço de escuta do servidor HTTP
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getPositiveInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be greater than zero", key)
	}
	return n, nil
}
