package ports

import (
	"context"

	"github.com/aretw0/todomcp/pkg/domain"
)

// ActionDispatcher defines how a resolved intent is executed.
// Implementations must never panic or return a Go error: every failure is
// folded into the returned domain.ActionResult.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, intent domain.ResolvedIntent) domain.ActionResult
}
