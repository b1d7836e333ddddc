package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
)

// DefaultModel is used when no model is configured.
const DefaultModel = anthropic.ModelClaude3_5HaikuLatest

// Client sends classification requests to the Anthropic Messages API.
type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

// New creates a client. An empty baseURL uses the public API.
// Retries are disabled: every call is a single round trip.
func New(apiKey, model, baseURL string, timeout time.Duration) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	m := anthropic.Model(model)
	if model == "" {
		m = DefaultModel
	}

	return &Client{
		client: anthropic.NewClient(opts...),
		model:  m,
	}
}

// Name returns the provider label and model.
func (c *Client) Name() string {
	return fmt.Sprintf("anthropic-%s", c.model)
}

// Complete sends the request and concatenates the text blocks of the reply.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	model := c.model
	if req.Model != "" {
		model = anthropic.Model(req.Model)
	}

	messages := make([]anthropic.MessageParam, 0, 1+2*len(req.Examples))
	for _, ex := range req.Examples {
		messages = append(messages,
			anthropic.NewUserMessage(anthropic.NewTextBlock(ex.User)),
			anthropic.NewAssistantMessage(anthropic.NewTextBlock(ex.Assistant)),
		)
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)))

	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 200
	}

	params := anthropic.MessageNewParams{
		Model:       model,
		MaxTokens:   maxTokens,
		Messages:    messages,
		Temperature: anthropic.Float(req.Temperature),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("anthropic API error: status=%d: %w", apiErr.StatusCode, err)
		}
		return "", &domain.NetworkError{Op: "anthropic completion", Err: err}
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("anthropic API returned no text")
	}
	return b.String(), nil
}
