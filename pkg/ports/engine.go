package ports

import (
	"context"

	"github.com/aretw0/todomcp/pkg/domain"
)

// IntentResolver classifies a prompt into a known action.
// The returned intent is always usable: on failure it is domain.UnknownIntent()
// and the error explains why.
type IntentResolver interface {
	Resolve(ctx context.Context, prompt string) (domain.ResolvedIntent, error)
}

// Assistant is the surface adapters (MCP, HTTP, CLI) drive.
type Assistant interface {
	IntentResolver
	ActionDispatcher

	// Handle resolves the prompt and dispatches the resulting intent.
	Handle(ctx context.Context, prompt string) domain.ActionResult

	// Schema returns the actions the assistant understands.
	Schema() domain.ActionSchema
}
