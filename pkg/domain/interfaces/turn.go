package interfaces

import (
	"context"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

// TurnRepository defines the interface for conversation history persistence
type TurnRepository interface {
	// Append stores one exchange. Text fields are truncated by the caller.
	Append(ctx context.Context, turn *model.Turn) error

	// Recent retrieves up to limit turns for the phone number in
	// chronological order (oldest first).
	Recent(ctx context.Context, phone types.Phone, limit int) ([]*model.Turn, error)

	// Count returns the number of stored turns
	Count(ctx context.Context) (int, error)
}
