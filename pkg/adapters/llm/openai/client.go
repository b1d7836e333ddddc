package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// GroqBaseURL is Groq's OpenAI-compatible endpoint.
	GroqBaseURL = "https://api.groq.com/openai/v1"
	// DefaultGroqModel is used when no model is configured for Groq.
	DefaultGroqModel = "llama-3.3-70b-versatile"
	// DefaultOpenAIModel is used when no model is configured for OpenAI.
	DefaultOpenAIModel = "gpt-4o-mini"
)

// Client sends chat completions to any OpenAI-compatible endpoint.
type Client struct {
	client *openai.Client
	model  string
	name   string
}

// Option defines a functional option for configuring the Client.
type Option func(*settings)

type settings struct {
	baseURL string
	timeout time.Duration
	name    string
	http    *http.Client
}

// WithBaseURL points the client at a different endpoint (Groq, a proxy, a test server).
func WithBaseURL(url string) Option {
	return func(s *settings) {
		s.baseURL = url
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = d
	}
}

// WithName overrides the provider label used in logs and metrics.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) {
		s.http = c
	}
}

// New creates a completion client. Retries are disabled: every call is a
// single round trip.
func New(apiKey, model string, opts ...Option) *Client {
	s := settings{name: "openai"}
	for _, opt := range opts {
		opt(&s)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if s.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(s.baseURL))
	}
	if s.http != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(s.http))
	}
	if s.timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(s.timeout))
	}

	client := openai.NewClient(reqOpts...)
	return &Client{
		client: &client,
		model:  model,
		name:   s.name,
	}
}

// NewGroq creates a client for Groq's OpenAI-compatible API.
func NewGroq(apiKey, model string, opts ...Option) *Client {
	if model == "" {
		model = DefaultGroqModel
	}
	base := []Option{WithBaseURL(GroqBaseURL), WithName("groq")}
	return New(apiKey, model, append(base, opts...)...)
}

// Name returns the provider label and model.
func (c *Client) Name() string {
	return fmt.Sprintf("%s-%s", c.name, c.model)
}

// Complete sends the system prompt, the few-shot exchanges and the user prompt
// and returns the content of the first choice.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2+2*len(req.Examples))
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, ex := range req.Examples {
		messages = append(messages, openai.UserMessage(ex.User), openai.AssistantMessage(ex.Assistant))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       model,
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%s API error: status=%d: %w", c.name, apiErr.StatusCode, err)
		}
		return "", &domain.NetworkError{Op: c.name + " completion", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s API returned no choices", c.name)
	}
	return resp.Choices[0].Message.Content, nil
}
