package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aretw0/todomcp/internal/logging"
	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
)

const (
	// DefaultTemperature keeps classification near-deterministic.
	DefaultTemperature = 0.1
	// DefaultMaxTokens bounds the reply; an intent object is small.
	DefaultMaxTokens = 200
)

// Resolver translates free text into a domain.ResolvedIntent using one
// completion call per prompt. It keeps no state between calls.
type Resolver struct {
	client        ports.CompletionClient
	schema        domain.ActionSchema
	system        string
	examples      []ports.Exchange
	model         string
	temperature   float64
	maxTokens     int
	maxPromptSize int
	logger        *slog.Logger
}

// Option defines a functional option for configuring the Resolver.
type Option func(*Resolver)

// WithModel sets the model identifier sent with each request.
// An empty model lets the client use its own default.
func WithModel(model string) Option {
	return func(r *Resolver) {
		r.model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(r *Resolver) {
		r.temperature = t
	}
}

// WithMaxTokens sets the output-token budget.
func WithMaxTokens(n int) Option {
	return func(r *Resolver) {
		r.maxTokens = n
	}
}

// WithExamples replaces the few-shot exchanges.
func WithExamples(examples []ports.Exchange) Option {
	return func(r *Resolver) {
		r.examples = examples
	}
}

// WithMaxPromptSize sets the maximum prompt size in bytes.
func WithMaxPromptSize(n int) Option {
	return func(r *Resolver) {
		r.maxPromptSize = n
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver for schema backed by client.
func New(client ports.CompletionClient, schema domain.ActionSchema, opts ...Option) *Resolver {
	r := &Resolver{
		client:        client,
		schema:        schema,
		examples:      DefaultExamples,
		temperature:   DefaultTemperature,
		maxTokens:     DefaultMaxTokens,
		maxPromptSize: DefaultMaxPromptSize,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.system = BuildSystemPrompt(schema)
	return r
}

// Resolve classifies prompt.
//
// The returned intent is always usable. When the prompt is empty, rejected,
// or the model call or its reply fails, the intent is domain.UnknownIntent()
// and the error says why; no error is ever fatal for the caller.
// Empty prompts never reach the model.
func (r *Resolver) Resolve(ctx context.Context, prompt string) (domain.ResolvedIntent, error) {
	clean, err := SanitizePrompt(prompt, r.maxPromptSize)
	if err != nil {
		return domain.UnknownIntent(), &domain.ResolutionError{Reason: "prompt rejected", Err: err}
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return domain.UnknownIntent(), domain.ErrEmptyPrompt
	}

	logger := r.logger.With("request_id", domain.RequestID(ctx), "client", r.client.Name())

	reply, err := r.client.Complete(ctx, ports.CompletionRequest{
		Model:       r.model,
		System:      r.system,
		Examples:    r.examples,
		Prompt:      clean,
		Temperature: r.temperature,
		MaxTokens:   r.maxTokens,
	})
	if err != nil {
		logger.Warn("Completion failed", "error", err)
		return domain.UnknownIntent(), &domain.ResolutionError{Reason: "completion failed", Err: err}
	}

	intent, err := DecodeIntent(reply, r.schema)
	if err != nil {
		logger.Warn("Unparseable classification reply", "error", err, "reply", reply)
		return domain.UnknownIntent(), &domain.ResolutionError{Reason: "unparseable reply", Err: err}
	}

	logger.Debug("Intent resolved", "action", intent.Action, "params", intent.Params)
	return intent, nil
}

// IsNetworkFailure reports whether a resolution error came from the transport.
func IsNetworkFailure(err error) bool {
	var netErr *domain.NetworkError
	return errors.As(err, &netErr)
}
