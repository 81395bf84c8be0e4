package llm

import "context"

// StaticBackend returns a canned reply for every prompt. It keeps local
// development and the end-to-end tests independent of a running model
// server.
type StaticBackend struct {
	Reply string
}

func NewStaticBackend(reply string) *StaticBackend {
	if reply == "" {
		reply = "The model backend is not configured; this is a placeholder response."
	}
	return &StaticBackend{Reply: reply}
}

func (b *StaticBackend) Generate(_ context.Context, _ string) (string, error) {
	return b.Reply, nil
}
