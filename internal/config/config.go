package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported model providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Supported search engines. Auto prefers Serper when SERPER_API_KEY is set.
const (
	SearchEngineAuto       = "auto"
	SearchEngineDuckDuckGo = "duckduckgo"
	SearchEngineSerper     = "serper"
)

// Supported meeting scheduler backends.
const (
	SchedulerMemory = "memory"
	SchedulerGoogle = "google"
)

// Config holds the environment driven configuration for the assistant.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"jan-assistant"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"console"` // console or json

	// Model API
	LLMProvider      string        `env:"LLM_PROVIDER" envDefault:"anthropic"`
	AnthropicAPIKey  string        `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string        `env:"ANTHROPIC_BASE_URL"`
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	Model            string        `env:"ASSISTANT_MODEL" envDefault:"claude-sonnet-4-20250514"`
	ModelName        string        `env:"ASSISTANT_MODEL_NAME" envDefault:"Claude"`
	MaxTokens        int           `env:"ASSISTANT_MAX_TOKENS" envDefault:"2000"`
	HistoryWindow    int           `env:"HISTORY_WINDOW" envDefault:"10"`
	ContextTokens    int           `env:"CONTEXT_TOKEN_LIMIT" envDefault:"128000"`
	ModelTimeout     time.Duration `env:"MODEL_TIMEOUT" envDefault:"75s"`

	// Tool execution
	ToolTimeout        time.Duration `env:"TOOL_TIMEOUT" envDefault:"45s"`
	MaxToolResultChars int           `env:"MAX_TOOL_RESULT_CHARS" envDefault:"20000"`

	// Email
	ResendAPIKey string `env:"RESEND_API_KEY"`
	EmailFrom    string `env:"EMAIL_FROM" envDefault:"onboarding@resend.dev"`

	// Search
	SearchEngine  string        `env:"SEARCH_ENGINE" envDefault:"auto"`
	SerperAPIKey  string        `env:"SERPER_API_KEY"`
	DuckDuckGoURL string        `env:"DUCKDUCKGO_URL" envDefault:"https://html.duckduckgo.com/html/"`
	SearchTimeout time.Duration `env:"SEARCH_TIMEOUT" envDefault:"10s"`

	// Meetings
	SchedulerBackend      string `env:"SCHEDULER_BACKEND" envDefault:"memory"`
	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"credentials.json"`
	GoogleTokenFile       string `env:"GOOGLE_TOKEN_FILE" envDefault:"token.json"`
	GoogleCalendarID      string `env:"GOOGLE_CALENDAR_ID" envDefault:"primary"`
	CalendarTimezone      string `env:"CALENDAR_TIMEZONE" envDefault:"UTC"`

	// Metrics are only served when an address is configured.
	MetricsAddr string `env:"METRICS_ADDR"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.LLMProvider = normalize(cfg.LLMProvider, ProviderAnthropic)
	switch cfg.LLMProvider {
	case ProviderAnthropic, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderAnthropic, ProviderOpenAI, cfg.LLMProvider)
	}

	cfg.SearchEngine = normalize(cfg.SearchEngine, SearchEngineAuto)
	switch cfg.SearchEngine {
	case SearchEngineAuto, SearchEngineDuckDuckGo, SearchEngineSerper:
	default:
		return nil, fmt.Errorf("SEARCH_ENGINE must be %q, %q or %q, got %q", SearchEngineAuto, SearchEngineDuckDuckGo, SearchEngineSerper, cfg.SearchEngine)
	}

	cfg.SchedulerBackend = normalize(cfg.SchedulerBackend, SchedulerMemory)
	switch cfg.SchedulerBackend {
	case SchedulerMemory, SchedulerGoogle:
	default:
		return nil, fmt.Errorf("SCHEDULER_BACKEND must be %q or %q, got %q", SchedulerMemory, SchedulerGoogle, cfg.SchedulerBackend)
	}

	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.HistoryWindow < 0 {
		cfg.HistoryWindow = 0
	}
	if cfg.ToolTimeout <= 0 {
		cfg.ToolTimeout = 45 * time.Second
	}
	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = 75 * time.Second
	}

	return cfg, nil
}

func normalize(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

// ModelAPIKey returns the credential for the configured provider.
func (c *Config) ModelAPIKey() string {
	if c.LLMProvider == ProviderOpenAI {
		return strings.TrimSpace(c.OpenAIAPIKey)
	}
	return strings.TrimSpace(c.AnthropicAPIKey)
}

// ModelAPIKeyEnv names the variable that carries the provider credential.
func (c *Config) ModelAPIKeyEnv() string {
	if c.LLMProvider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "ANTHROPIC_API_KEY"
}
