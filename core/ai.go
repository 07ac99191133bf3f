package core

import "context"

// TextGenerator is the boundary to an external AI text-generation service.
// Implementations may fail; callers that surface generated content to end
// users are expected to degrade to a fallback message instead of erroring.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
