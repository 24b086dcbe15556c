package types

import "fmt"

// ConversationState represents the progress of a booking conversation
type ConversationState string

const (
	StateNew         ConversationState = "NEW"
	StateIdentifying ConversationState = "IDENTIFYING"
	StateCollecting  ConversationState = "COLLECTING"
	StateScheduling  ConversationState = "SCHEDULING"
	StateConfirming  ConversationState = "CONFIRMING"
	StateCompleted   ConversationState = "COMPLETED"
)

// AllConversationStates returns all valid conversation states in progression order
func AllConversationStates() []ConversationState {
	return []ConversationState{
		StateNew,
		StateIdentifying,
		StateCollecting,
		StateScheduling,
		StateConfirming,
		StateCompleted,
	}
}

// IsValid checks if the conversation state is valid
func (s ConversationState) IsValid() bool {
	switch s {
	case StateNew,
		StateIdentifying,
		StateCollecting,
		StateScheduling,
		StateConfirming,
		StateCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the state closes the current booking cycle.
// A COMPLETED session only leaves this state through an explicit reset.
func (s ConversationState) IsTerminal() bool {
	return s == StateCompleted
}

// Normalize returns the state, treating empty as StateNew
func (s ConversationState) Normalize() ConversationState {
	if s == "" {
		return StateNew
	}
	return s
}

// String returns the string representation of the conversation state
func (s ConversationState) String() string {
	return string(s)
}

// ParseConversationState parses a string into a ConversationState
func ParseConversationState(s string) (ConversationState, error) {
	state := ConversationState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid conversation state: %s", s)
	}
	return state, nil
}
