package llm

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// Disabled is a Generator used when no LLM backend is configured. Every
// call fails, which makes the engine answer with its fallback reply.
// Useful for webhook and pipeline testing without credentials.
type Disabled struct{}

func NewDisabled() *Disabled {
	return &Disabled{}
}

func (d *Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	return "", goerr.New("reply generation is disabled")
}
