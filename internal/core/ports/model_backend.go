package ports

import "context"

// ModelBackend abstracts the language model used by the chat endpoint. The
// gatekeeping pipeline does not care how responses are produced; backends are
// swapped via configuration.
type ModelBackend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
