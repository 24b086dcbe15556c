package model

import (
	"time"

	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

// TurnTextLimit bounds the persisted length of each side of a turn
const TurnTextLimit = 500

// Turn is one persisted exchange: the caller's message and the reply sent
// back, together with the state the session held after the exchange.
type Turn struct {
	PatientID types.PatientID
	Phone     types.Phone `masq:"secret"`
	UserText  string      `masq:"secret"`
	BotText   string
	State     types.ConversationState
	CreatedAt time.Time
}

// Truncate caps both text fields at TurnTextLimit runes
func (t *Turn) Truncate() {
	t.UserText = truncateRunes(t.UserText, TurnTextLimit)
	t.BotText = truncateRunes(t.BotText, TurnTextLimit)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
