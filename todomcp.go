package todomcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/todomcp/internal/config"
	"github.com/aretw0/todomcp/internal/logging"
	"github.com/aretw0/todomcp/pkg/actions"
	"github.com/aretw0/todomcp/pkg/adapters/llm"
	"github.com/aretw0/todomcp/pkg/adapters/todoist"
	"github.com/aretw0/todomcp/pkg/dispatch"
	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
	"github.com/aretw0/todomcp/pkg/registry"
	"github.com/aretw0/todomcp/pkg/resolver"
	"github.com/google/uuid"
)

var _ ports.Assistant = (*Assistant)(nil)

// Assistant is the high-level entry point. It wires a resolver and a
// dispatcher over the same action schema and keeps no state between calls.
type Assistant struct {
	schema     domain.ActionSchema
	resolver   *resolver.Resolver
	dispatcher *dispatch.Dispatcher
	tasks      ports.TaskAPI
	client     ports.CompletionClient
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Assistant.
type Option func(*Assistant)

// WithCompletionClient injects the model client, bypassing provider selection.
func WithCompletionClient(c ports.CompletionClient) Option {
	return func(a *Assistant) {
		a.client = c
	}
}

// WithTaskAPI injects the task API, bypassing the Todoist client.
func WithTaskAPI(api ports.TaskAPI) Option {
	return func(a *Assistant) {
		a.tasks = api
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Assistant) {
		a.hooks = hooks
	}
}

// New builds an Assistant from cfg. A nil cfg means config.Default().
// Credentials are only required for the clients that are not injected.
func New(cfg *config.Config, opts ...Option) (*Assistant, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	a := &Assistant{schema: domain.DefaultSchema()}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.NewNop()
	}

	if a.client == nil || a.tasks == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	if a.client == nil {
		client, err := llm.NewClient(cfg.LLMSettings())
		if err != nil {
			return nil, &domain.ConfigError{Key: "TODOMCP_LLM_PROVIDER", Reason: err.Error()}
		}
		a.client = client
	}
	if a.tasks == nil {
		a.tasks = todoist.New(cfg.Todoist.APIKey,
			todoist.WithBaseURL(cfg.Todoist.BaseURL),
			todoist.WithTimeout(cfg.Timeout),
		)
	}

	a.resolver = resolver.New(a.client, a.schema,
		resolver.WithModel(cfg.LLM.Model),
		resolver.WithTemperature(cfg.LLM.Temperature),
		resolver.WithMaxTokens(cfg.LLM.MaxTokens),
		resolver.WithMaxPromptSize(cfg.MaxPromptSize),
		resolver.WithLogger(a.logger),
	)

	reg := registry.NewRegistry()
	actions.Register(reg, a.tasks)

	d, err := dispatch.New(a.schema, reg,
		dispatch.WithLogger(a.logger),
		dispatch.WithLifecycleHooks(a.hooks),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build dispatcher: %w", err)
	}
	a.dispatcher = d

	a.logger.Debug("Assistant ready", "client", a.client.Name(), "actions", a.schema.Names())
	return a, nil
}

// Handle resolves prompt and dispatches the resulting intent.
// Resolution failures degrade to the unknown intent, so the caller always
// gets a result describing what happened.
func (a *Assistant) Handle(ctx context.Context, prompt string) domain.ActionResult {
	if domain.RequestID(ctx) == "" {
		ctx = domain.WithRequestID(ctx, uuid.NewString())
	}

	intent, err := a.Resolve(ctx, prompt)
	switch {
	case resolver.IsNetworkFailure(err):
		a.logger.Warn("Model unreachable, falling back to unknown intent", "request_id", domain.RequestID(ctx), "error", err)
	case err != nil:
		a.logger.Info("Falling back to unknown intent", "request_id", domain.RequestID(ctx), "error", err)
	}
	return a.Dispatch(ctx, intent)
}

// Resolve classifies prompt without dispatching it.
func (a *Assistant) Resolve(ctx context.Context, prompt string) (domain.ResolvedIntent, error) {
	start := time.Now()
	intent, err := a.resolver.Resolve(ctx, prompt)

	if a.hooks.OnResolve != nil {
		a.hooks.OnResolve(ctx, &domain.ResolveEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventResolve,
				RequestID: domain.RequestID(ctx),
				Duration:  time.Since(start),
			},
			Action: intent.Action,
			Err:    err,
		})
	}
	return intent, err
}

// Dispatch runs the handler for an already resolved intent.
func (a *Assistant) Dispatch(ctx context.Context, intent domain.ResolvedIntent) domain.ActionResult {
	return a.dispatcher.Dispatch(ctx, intent)
}

// CreateTask creates a task without going through the model.
// A zero priority means the schema default.
func (a *Assistant) CreateTask(ctx context.Context, content, due string, priority int) domain.ActionResult {
	params := map[string]any{"content": content}
	if due != "" {
		params["due_string"] = due
	}
	if priority != 0 {
		params["priority"] = priority
	}
	return a.Dispatch(ctx, domain.ResolvedIntent{Action: domain.ActionCreateTask, Params: params})
}

// ListTasks lists tasks without going through the model.
func (a *Assistant) ListTasks(ctx context.Context, filter string) domain.ActionResult {
	return a.Dispatch(ctx, domain.ResolvedIntent{
		Action: domain.ActionListTasks,
		Params: map[string]any{"filter": filter},
	})
}

// Schema returns the actions the assistant understands.
func (a *Assistant) Schema() domain.ActionSchema {
	return a.schema
}
