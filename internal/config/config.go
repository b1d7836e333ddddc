// Package config loads the settings the assistant needs at startup.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables. The result is validated once and passed explicitly
// to the components; nothing reads the environment after startup.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/todomcp/pkg/adapters/llm"
	"github.com/aretw0/todomcp/pkg/adapters/todoist"
	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/resolver"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	Todoist TodoistConfig `yaml:"todoist"`
	LLM     LLMConfig     `yaml:"llm"`
	Server  ServerConfig  `yaml:"server"`

	// Timeout bounds every outbound call.
	Timeout  time.Duration `yaml:"timeout" env:"TODOMCP_HTTP_TIMEOUT"`
	LogLevel string        `yaml:"log_level" env:"TODOMCP_LOG_LEVEL"`
	// MaxPromptSize is the largest prompt, in bytes, sent to the model.
	MaxPromptSize int `yaml:"max_prompt_size" env:"TODOMCP_MAX_PROMPT_SIZE"`
}

// TodoistConfig configures the task API.
type TodoistConfig struct {
	APIKey  string `yaml:"-" env:"TODOIST_API_KEY"`
	BaseURL string `yaml:"base_url" env:"TODOIST_BASE_URL"`
}

// LLMConfig configures the classification model.
type LLMConfig struct {
	Provider    string  `yaml:"provider" env:"TODOMCP_LLM_PROVIDER"`
	BaseURL     string  `yaml:"base_url" env:"TODOMCP_LLM_BASE_URL"`
	Model       string  `yaml:"model" env:"TODOMCP_LLM_MODEL"`
	Temperature float64 `yaml:"temperature" env:"TODOMCP_LLM_TEMPERATURE"`
	MaxTokens   int     `yaml:"max_tokens" env:"TODOMCP_LLM_MAX_TOKENS"`

	// APIKey takes precedence over the provider-specific variables.
	APIKey          string `yaml:"-" env:"TODOMCP_LLM_API_KEY"`
	GroqAPIKey      string `yaml:"-" env:"GROQ_API_KEY"`
	OpenAIAPIKey    string `yaml:"-" env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"`
}

// ServerConfig configures the MCP and HTTP listeners.
type ServerConfig struct {
	Transport string `yaml:"transport" env:"TODOMCP_TRANSPORT"`
	MCPPort   int    `yaml:"mcp_port" env:"TODOMCP_MCP_PORT"`
	HTTPPort  int    `yaml:"http_port" env:"TODOMCP_HTTP_PORT"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Todoist: TodoistConfig{
			BaseURL: todoist.DefaultBaseURL,
		},
		LLM: LLMConfig{
			Provider:    llm.ProviderGroq,
			Temperature: resolver.DefaultTemperature,
			MaxTokens:   resolver.DefaultMaxTokens,
		},
		Server: ServerConfig{
			Transport: "sse",
			MCPPort:   8000,
			HTTPPort:  8080,
		},
		Timeout:       todoist.DefaultTimeout,
		LogLevel:      "info",
		MaxPromptSize: resolver.DefaultMaxPromptSize,
	}
}

// Load reads the optional YAML file at path (skipped when path is empty)
// and applies environment overrides. It does not validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Key returns the credential for the configured provider.
func (c LLMConfig) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch c.Provider {
	case llm.ProviderOpenAI:
		return c.OpenAIAPIKey
	case llm.ProviderAnthropic:
		return c.AnthropicAPIKey
	}
	return c.GroqAPIKey
}

// keyVar names the variable users should set for the provider's key.
func (c LLMConfig) keyVar() string {
	switch c.Provider {
	case llm.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case llm.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	}
	return "GROQ_API_KEY"
}

// LLMSettings converts the LLM section into adapter settings.
func (c *Config) LLMSettings() llm.Settings {
	return llm.Settings{
		Provider: c.LLM.Provider,
		APIKey:   c.LLM.Key(),
		BaseURL:  c.LLM.BaseURL,
		Model:    c.LLM.Model,
		Timeout:  c.Timeout,
	}
}

// Validate checks credentials and ranges. It returns a *domain.ConfigError;
// callers must not serve requests when it fails.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Todoist.APIKey) == "" {
		return &domain.ConfigError{Key: "TODOIST_API_KEY", Reason: "not found in environment variables"}
	}

	switch c.LLM.Provider {
	case llm.ProviderGroq, llm.ProviderOpenAI, llm.ProviderAnthropic:
	default:
		return &domain.ConfigError{Key: "TODOMCP_LLM_PROVIDER", Reason: fmt.Sprintf("unsupported provider %q", c.LLM.Provider)}
	}

	if strings.TrimSpace(c.LLM.Key()) == "" {
		return &domain.ConfigError{Key: c.LLM.keyVar(), Reason: "not found in environment variables"}
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return &domain.ConfigError{Key: "TODOMCP_LLM_TEMPERATURE", Reason: "must be between 0 and 2"}
	}
	if c.LLM.MaxTokens <= 0 {
		return &domain.ConfigError{Key: "TODOMCP_LLM_MAX_TOKENS", Reason: "must be positive"}
	}
	if c.Timeout <= 0 {
		return &domain.ConfigError{Key: "TODOMCP_HTTP_TIMEOUT", Reason: "must be positive"}
	}
	return nil
}
