package usecase

import (
	"strings"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

// confirmationPhrases close the deal from CONFIRMING.
var confirmationPhrases = []string{
	"sim", "confirmo", "pode ser", "ok", "perfeito", "combinado", "fechado",
}

// Transition evaluates the state machine for one turn and returns the
// next state. At most one rule fires per call: booking intent is checked
// first as a fast track into SCHEDULING, then the single rule of the
// current state. When nothing fires the state is unchanged. COMPLETED is
// terminal.
//
// botReply is part of the contract so that future rules can react to
// what was said to the patient; no current rule reads it.
func Transition(state types.ConversationState, message string, facts model.CollectedFacts, botReply string) types.ConversationState {
	lowered := strings.ToLower(message)

	if HasBookingIntent(lowered) {
		switch state {
		case types.StateNew, types.StateIdentifying, types.StateCollecting:
			return types.StateScheduling
		}
	}

	switch state {
	case types.StateNew:
		if facts.Name != "" {
			return types.StateCollecting
		}
		return types.StateIdentifying

	case types.StateIdentifying:
		if facts.Name != "" {
			return types.StateCollecting
		}

	case types.StateCollecting:
		if facts.Name != "" && facts.Service != "" {
			return types.StateScheduling
		}

	case types.StateScheduling:
		if facts.DatePreference != "" ||
			strings.Contains(lowered, "hoje") || strings.Contains(lowered, "amanhã") {
			return types.StateConfirming
		}

	case types.StateConfirming:
		if containsAny(lowered, confirmationPhrases) {
			return types.StateCompleted
		}
	}

	return state
}
