package dispatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/todomcp/internal/logging"
	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name   string
	params map[string]any
}

func newRegistry(calls *[]call, fail map[string]error) *registry.Registry {
	reg := registry.NewRegistry()
	for _, name := range domain.DefaultSchema().Names() {
		name := name
		reg.Register(name, func(ctx context.Context, params map[string]any) (string, error) {
			*calls = append(*calls, call{name: name, params: params})
			if err := fail[name]; err != nil {
				return "", err
			}
			return "ran " + name, nil
		})
	}
	return reg
}

func TestNew_RequiresHandlerForEveryAction(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(domain.ActionCreateTask, func(ctx context.Context, params map[string]any) (string, error) { return "", nil })

	_, err := New(domain.DefaultSchema(), reg)

	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, domain.ActionListTasks)

	_, err = New(domain.DefaultSchema(), nil)
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNew_WarnsAboutHandlersOutsideSchema(t *testing.T) {
	var calls []call
	reg := newRegistry(&calls, nil)
	reg.Register("archive_task", func(ctx context.Context, params map[string]any) (string, error) { return "", nil })

	var buf bytes.Buffer
	_, err := New(domain.DefaultSchema(), reg, WithLogger(logging.NewWithWriter(&buf, slog.LevelWarn)))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "action=archive_task")
	assert.NotContains(t, buf.String(), "action=create_task")
}

func TestDispatch_HandlerRemovedAfterNew(t *testing.T) {
	var calls []call
	reg := newRegistry(&calls, nil)
	d, err := New(domain.DefaultSchema(), reg)
	require.NoError(t, err)

	reg.Register(domain.ActionListTasks, nil)
	result := d.Dispatch(context.Background(), domain.ResolvedIntent{Action: domain.ActionListTasks})

	require.True(t, result.IsError())
	var cfgErr *domain.ConfigError
	assert.ErrorAs(t, result.Err(), &cfgErr)
	assert.Empty(t, calls)
}

func TestDispatch_RoutesEveryKnownAction(t *testing.T) {
	var calls []call
	d, err := New(domain.DefaultSchema(), newRegistry(&calls, nil))
	require.NoError(t, err)

	for _, name := range domain.DefaultSchema().Names() {
		params := map[string]any{"content": "x"}
		res := d.Dispatch(context.Background(), domain.ResolvedIntent{Action: name, Params: params})
		assert.False(t, res.IsError(), name)
		assert.Equal(t, "ran "+name, res.Text())
	}
	assert.Len(t, calls, 2)
}

func TestDispatch_UnknownActions(t *testing.T) {
	var calls []call
	d, err := New(domain.DefaultSchema(), newRegistry(&calls, nil))
	require.NoError(t, err)

	for _, action := range []string{domain.ActionUnknown, "", "delete_task"} {
		res := d.Dispatch(context.Background(), domain.ResolvedIntent{Action: action})
		assert.True(t, res.IsError())
		assert.True(t, IsUnknownAction(res))
		assert.ErrorIs(t, res.Err(), domain.ErrUnknownAction)
		assert.Equal(t, RephraseMessage, res.Message())
	}
	assert.Empty(t, calls)
}

func TestDispatch_AppliesDefaults(t *testing.T) {
	var calls []call
	d, err := New(domain.DefaultSchema(), newRegistry(&calls, nil))
	require.NoError(t, err)

	in := map[string]any{"content": "Buy milk"}
	d.Dispatch(context.Background(), domain.ResolvedIntent{Action: domain.ActionCreateTask, Params: in})

	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{"content": "Buy milk", "due_string": "today", "priority": 1}, calls[0].params)
	assert.Len(t, in, 1, "caller params must not be mutated")
}

func TestDispatch_MissingRequiredParam(t *testing.T) {
	var calls []call
	d, err := New(domain.DefaultSchema(), newRegistry(&calls, nil))
	require.NoError(t, err)

	res := d.Dispatch(context.Background(), domain.ResolvedIntent{Action: domain.ActionCreateTask, Params: map[string]any{}})

	var vErr *domain.ValidationError
	require.ErrorAs(t, res.Err(), &vErr)
	assert.Equal(t, "content", vErr.Param)
	assert.Contains(t, res.String(), "missing parameter")
	assert.Empty(t, calls)
}

func TestDispatch_HandlerErrorIsWrapped(t *testing.T) {
	var calls []call
	remote := &domain.RemoteAPIError{Op: "list tasks", StatusCode: 401, Body: "Forbidden"}
	d, err := New(domain.DefaultSchema(), newRegistry(&calls, map[string]error{domain.ActionListTasks: remote}))
	require.NoError(t, err)

	res := d.Dispatch(context.Background(), domain.ResolvedIntent{Action: domain.ActionListTasks})

	assert.True(t, res.IsError())
	assert.Contains(t, res.String(), "401")
	assert.Contains(t, res.String(), "fetching Todoist tasks")

	var apiErr *domain.RemoteAPIError
	assert.True(t, errors.As(res.Err(), &apiErr))
}

func TestDispatch_HandlerPanicIsContained(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(domain.ActionCreateTask, func(ctx context.Context, params map[string]any) (string, error) {
		panic("boom")
	})
	reg.Register(domain.ActionListTasks, func(ctx context.Context, params map[string]any) (string, error) { return "", nil })

	d, err := New(domain.DefaultSchema(), reg)
	require.NoError(t, err)

	var res domain.ActionResult
	assert.NotPanics(t, func() {
		res = d.Dispatch(context.Background(), domain.ResolvedIntent{Action: domain.ActionCreateTask, Params: map[string]any{"content": "x"}})
	})
	assert.True(t, res.IsError())
}

func TestDispatch_Hooks(t *testing.T) {
	var calls []call
	var events []*domain.DispatchEvent
	hooks := domain.LifecycleHooks{
		OnDispatch: func(ctx context.Context, e *domain.DispatchEvent) { events = append(events, e) },
	}

	d, err := New(domain.DefaultSchema(), newRegistry(&calls, nil), WithLifecycleHooks(hooks))
	require.NoError(t, err)

	ctx := domain.WithRequestID(context.Background(), "req-1")
	d.Dispatch(ctx, domain.ResolvedIntent{Action: domain.ActionListTasks})
	d.Dispatch(ctx, domain.UnknownIntent())

	require.Len(t, events, 2)
	assert.Equal(t, domain.ActionListTasks, events[0].Action)
	assert.False(t, events[0].IsError)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, domain.ActionUnknown, events[1].Action)
	assert.True(t, events[1].IsError)
}
