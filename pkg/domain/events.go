package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventResolve  EventType = "resolve"
	EventDispatch EventType = "dispatch"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	RequestID string        `json:"request_id"`
	Duration  time.Duration `json:"duration"`
}

// ResolveEvent describes one classification call.
type ResolveEvent struct {
	EventBase
	Action string `json:"action"`
	Err    error  `json:"-"`
}

// DispatchEvent describes one handler invocation.
type DispatchEvent struct {
	EventBase
	Action  string `json:"action"`
	IsError bool   `json:"is_error,omitempty"`
	Message string `json:"message,omitempty"`
}

// LifecycleHooks defines callbacks for observability.
type LifecycleHooks struct {
	OnResolve  func(context.Context, *ResolveEvent)
	OnDispatch func(context.Context, *DispatchEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnResolve: func(ctx context.Context, e *ResolveEvent) {
			if h.OnResolve != nil {
				h.OnResolve(ctx, e)
			}
			if other.OnResolve != nil {
				other.OnResolve(ctx, e)
			}
		},
		OnDispatch: func(ctx context.Context, e *DispatchEvent) {
			if h.OnDispatch != nil {
				h.OnDispatch(ctx, e)
			}
			if other.OnDispatch != nil {
				other.OnDispatch(ctx, e)
			}
		},
	}
}

type requestIDKey struct{}

// WithRequestID stores a request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in the context, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
