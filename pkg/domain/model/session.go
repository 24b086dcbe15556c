package model

import (
	"time"

	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

// Session is the live per-caller conversational state. One active session
// exists per phone number at a time; it is owned exclusively by the session
// store and no other component keeps a reference across turns.
type Session struct {
	Phone        types.Phone `masq:"secret"`
	PatientID    types.PatientID
	State        types.ConversationState
	Facts        CollectedFacts
	Context      map[string]string // scratch values: resolved specialty, booking id
	TurnCount    int
	LastActivity time.Time
}

// NewSession creates a fresh session for the given caller
func NewSession(phone types.Phone) *Session {
	return &Session{
		Phone:        phone,
		State:        types.StateNew,
		Context:      make(map[string]string),
		LastActivity: time.Now(),
	}
}

// Touch increments the turn counter and refreshes the activity timestamp
func (s *Session) Touch() {
	s.TurnCount++
	s.LastActivity = time.Now()
}

// IdleSince reports whether the session has been inactive past the cutoff
func (s *Session) IdleSince(cutoff time.Time) bool {
	return s.LastActivity.Before(cutoff)
}
