package model

import (
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

// TurnResult is what the engine hands back to the transport layer after
// one processed turn. Facts is a snapshot for observability; mutating it
// has no effect on the live session.
type TurnResult struct {
	Phone     types.Phone `masq:"secret"`
	Reply     string
	State     types.ConversationState
	Facts     CollectedFacts
	PatientID types.PatientID
	BookingID types.BookingID // empty unless this turn completed a booking
}
