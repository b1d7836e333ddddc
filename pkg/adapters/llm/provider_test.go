package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		provider string
		prefix   string
	}{
		{"", "groq-"},
		{ProviderGroq, "groq-"},
		{ProviderOpenAI, "openai-gpt"},
		{ProviderAnthropic, "anthropic-"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			c, err := NewClient(Settings{Provider: tt.provider, APIKey: "k"})
			require.NoError(t, err)
			assert.Contains(t, c.Name(), tt.prefix)
		})
	}
}

func TestNewClient_Unsupported(t *testing.T) {
	_, err := NewClient(Settings{Provider: "cohere"})
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
