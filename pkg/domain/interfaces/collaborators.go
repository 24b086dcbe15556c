package interfaces

import (
	"context"

	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

// Generator produces a reply for an assembled prompt. Implementations are
// expected to enforce their own timeout; failures are recovered by the
// engine with a fixed fallback reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Messenger delivers an outbound text message to a caller
type Messenger interface {
	SendText(ctx context.Context, phone types.Phone, text string) error
}

// Notifier sends a best-effort summary to an administrative channel.
// Failures are logged and swallowed; they never affect a caller's reply.
type Notifier interface {
	Notify(ctx context.Context, summary string) error
}
