// Package config resolves the process configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// the process environment. A .env file is loaded into the environment first
// without overriding variables that are already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/insight-mcp/insight/internal/llm"
)

// ErrUnsupportedProvider is returned when the configured LLM provider is not
// supported. It matches llm.ErrUnsupportedProvider.
var ErrUnsupportedProvider = llm.ErrUnsupportedProvider

// DefaultEnvFile is the .env file loaded when none is given.
const DefaultEnvFile = ".env"

// Environment variables.
const (
	EnvProvider    = "LLM_PROVIDER"
	EnvModel       = "LLM_MODEL"
	EnvTemperature = "LLM_TEMPERATURE"
	EnvMaxTokens   = "LLM_MAX_TOKENS"
	EnvBaseURL     = "LLM_BASE_URL"
	EnvLogLevel    = "INSIGHT_LOG_LEVEL"
	EnvMetricsAddr = "INSIGHT_METRICS_ADDR"
)

// apiKeyEnv lists the API key variables per provider, in lookup order.
var apiKeyEnv = map[string][]string{
	llm.ProviderOpenAI:    {"OPENAI_API_KEY"},
	llm.ProviderAnthropic: {"ANTHROPIC_API_KEY"},
	llm.ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// Config is the resolved process configuration.
type Config struct {
	LLM         llm.Config `yaml:"llm"`
	LogLevel    string     `yaml:"log_level"`
	MetricsAddr string     `yaml:"metrics_addr"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		LLM:      llm.DefaultConfig(),
		LogLevel: "info",
	}
}

// Load resolves the configuration. path is an optional YAML file. envFile is
// an optional .env file; when empty, DefaultEnvFile is loaded if it exists.
func Load(path, envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFile(envFile string) error {
	if envFile == "" {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("loading env file %s: %w", envFile, err)
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := env(EnvProvider); v != "" {
		c.LLM.Provider = v
	}
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))

	if v := env(EnvModel); v != "" {
		c.LLM.Model = v
	}
	if v := env(EnvTemperature); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvTemperature, err)
		}
		c.LLM.Temperature = t
	}
	if v := env(EnvMaxTokens); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvMaxTokens, err)
		}
		c.LLM.MaxTokens = n
	}
	if v := env(EnvBaseURL); v != "" {
		c.LLM.BaseURL = v
	}
	for _, name := range apiKeyEnv[c.LLM.Provider] {
		if v := env(name); v != "" {
			c.LLM.APIKey = v
			break
		}
	}
	if v := env(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := env(EnvMetricsAddr); v != "" {
		c.MetricsAddr = v
	}
	return nil
}

// Validate normalizes the LLM settings and checks the provider and log
// level.
func (c *Config) Validate() error {
	normalized, err := c.LLM.Normalize()
	if err != nil {
		return err
	}
	c.LLM = normalized

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel parses debug, info, warn or error (case-insensitive). An empty
// string is info.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}
