package gateway

import "context"

// Completer generates a completion for an instruction-formatted prompt.
// Implementations must return an error rather than an empty answer so the
// caller can fall back to the rule-based responder.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
