package llm

import "context"

// Completer runs a single-turn text completion.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}
