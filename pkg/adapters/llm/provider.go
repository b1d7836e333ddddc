// Package llm selects the completion client for a configured provider.
package llm

import (
	"fmt"
	"time"

	"github.com/aretw0/todomcp/pkg/adapters/llm/anthropic"
	"github.com/aretw0/todomcp/pkg/adapters/llm/openai"
	"github.com/aretw0/todomcp/pkg/ports"
)

// Supported providers.
const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Settings configures a completion client.
type Settings struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// NewClient builds the completion client for s.Provider.
func NewClient(s Settings) (ports.CompletionClient, error) {
	switch s.Provider {
	case ProviderGroq, "":
		opts := []openai.Option{openai.WithTimeout(s.Timeout)}
		if s.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(s.BaseURL))
		}
		return openai.NewGroq(s.APIKey, s.Model, opts...), nil
	case ProviderOpenAI:
		model := s.Model
		if model == "" {
			model = openai.DefaultOpenAIModel
		}
		opts := []openai.Option{openai.WithTimeout(s.Timeout)}
		if s.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(s.BaseURL))
		}
		return openai.New(s.APIKey, model, opts...), nil
	case ProviderAnthropic:
		return anthropic.New(s.APIKey, s.Model, s.BaseURL, s.Timeout), nil
	}
	return nil, fmt.Errorf("unsupported LLM provider %q", s.Provider)
}
