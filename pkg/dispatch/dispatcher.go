// Package dispatch routes resolved intents to their action handlers.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/todomcp/internal/logging"
	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
	"github.com/aretw0/todomcp/pkg/registry"
)

// RephraseMessage is returned for intents that map to no action.
const RephraseMessage = "Sorry, I couldn't determine what you wanted to do with Todoist. Please try rephrasing your request."

var _ ports.ActionDispatcher = (*Dispatcher)(nil)

// Dispatcher maps an intent to its handler. It performs no I/O itself.
type Dispatcher struct {
	schema   domain.ActionSchema
	registry *registry.Registry
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Dispatcher.
type Option func(*Dispatcher)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// New creates a Dispatcher. Every action in schema must have a handler in
// reg; a missing one is a *domain.ConfigError.
func New(schema domain.ActionSchema, reg *registry.Registry, opts ...Option) (*Dispatcher, error) {
	if reg == nil {
		return nil, &domain.ConfigError{Key: "registry", Reason: "no handler registry"}
	}

	var missing []string
	for _, name := range schema.Names() {
		if _, ok := reg.Lookup(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.ConfigError{
			Key:    "handlers",
			Reason: fmt.Sprintf("no handler registered for action(s): %s", strings.Join(missing, ", ")),
		}
	}

	d := &Dispatcher{
		schema:   schema,
		registry: reg,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	for _, name := range reg.Names() {
		if !schema.Has(name) {
			d.logger.Warn("Handler registered for an action outside the schema", "action", name)
		}
	}
	return d, nil
}

// Dispatch runs the handler for intent and folds every failure, including
// panics, into the returned result.
func (d *Dispatcher) Dispatch(ctx context.Context, intent domain.ResolvedIntent) (result domain.ActionResult) {
	start := time.Now()
	logger := d.logger.With("request_id", domain.RequestID(ctx), "action", intent.Action)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Handler panicked", "panic", r)
			result = domain.Fail(fmt.Errorf("internal error while running %s", intent.Action))
		}
		d.emit(ctx, intent.Action, start, result)
	}()

	spec, ok := d.schema.Lookup(intent.Action)
	if !ok {
		logger.Info("Unrecognized intent")
		return domain.Fail(unknownActionError{})
	}

	params := spec.ApplyDefaults(intent.Params)
	if missing := spec.Missing(params); len(missing) > 0 {
		return domain.Fail(&domain.ValidationError{Param: strings.Join(missing, ", "), Reason: "missing parameter"})
	}

	text, err := d.registry.Execute(ctx, spec.Name, params)
	if errors.Is(err, registry.ErrHandlerNotFound) {
		// New guarantees completeness; this only trips if the registry was
		// mutated afterwards.
		return domain.Fail(&domain.ConfigError{Key: "handlers", Reason: "no handler for " + spec.Name})
	}
	if err != nil {
		logger.Warn("Handler failed", "error", err)
		return domain.Fail(fmt.Errorf("%s: %w", failureLabel(spec.Name), err))
	}

	logger.Debug("Handler succeeded", "duration", time.Since(start))
	return domain.Ok(text)
}

func (d *Dispatcher) emit(ctx context.Context, action string, start time.Time, result domain.ActionResult) {
	if d.hooks.OnDispatch == nil {
		return
	}
	d.hooks.OnDispatch(ctx, &domain.DispatchEvent{
		EventBase: domain.EventBase{
			Timestamp: start,
			Type:      domain.EventDispatch,
			RequestID: domain.RequestID(ctx),
			Duration:  time.Since(start),
		},
		Action:  action,
		IsError: result.IsError(),
		Message: result.Message(),
	})
}

// unknownActionError carries the rephrase message and matches ErrUnknownAction.
type unknownActionError struct{}

func (unknownActionError) Error() string { return RephraseMessage }

func (unknownActionError) Is(target error) bool { return target == domain.ErrUnknownAction }

// IsUnknownAction reports whether result came from an unrecognized intent.
func IsUnknownAction(result domain.ActionResult) bool {
	return errors.Is(result.Err(), domain.ErrUnknownAction)
}

func failureLabel(action string) string {
	switch action {
	case domain.ActionCreateTask:
		return "creating task"
	case domain.ActionListTasks:
		return "fetching Todoist tasks"
	}
	return "running " + action
}
