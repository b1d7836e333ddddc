package ports

import "context"

// Exchange is one few-shot example: a user message and the expected reply.
type Exchange struct {
	User      string
	Assistant string
}

// CompletionRequest is a single, non-streaming classification request.
type CompletionRequest struct {
	Model       string
	System      string
	Examples    []Exchange
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// CompletionClient sends a completion request to a language model and returns
// the text of the first choice.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}
