package memory

import (
	"context"
	"sync"
	"time"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type turnRepository struct {
	mu    sync.RWMutex
	turns map[types.Phone][]*model.Turn
	total int
}

func newTurnRepository() *turnRepository {
	return &turnRepository{
		turns: make(map[types.Phone][]*model.Turn),
	}
}

func copyTurn(t *model.Turn) *model.Turn {
	copied := *t
	return &copied
}

func (r *turnRepository) Append(ctx context.Context, turn *model.Turn) error {
	if turn.Phone == "" {
		return goerr.New("turn requires a phone number")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyTurn(turn)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.turns[turn.Phone] = append(r.turns[turn.Phone], stored)
	r.total++

	return nil
}

func (r *turnRepository) Recent(ctx context.Context, phone types.Phone, limit int) ([]*model.Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.turns[phone]
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	result := make([]*model.Turn, len(history))
	for i, t := range history {
		result[i] = copyTurn(t)
	}
	return result, nil
}

func (r *turnRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.total, nil
}
