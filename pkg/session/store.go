package session

import (
	"sync"
	"time"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

// Store owns every live conversation session. Access is serialized per
// caller identity: Acquire holds the identity's lock until release is
// called, so at most one turn per caller is in flight while turns for
// different callers proceed in parallel.
//
// The store is created at startup and injected into the turn processor
// and the idle reaper; it is never package-global state.
type Store struct {
	mu       sync.Mutex
	sessions map[types.Phone]*entry
}

type entry struct {
	mu      sync.Mutex
	session *model.Session
	removed bool
}

func New() *Store {
	return &Store{
		sessions: make(map[types.Phone]*entry),
	}
}

// Acquire returns the live session for the phone, creating one on first
// contact, with the per-identity lock held. The caller must invoke the
// returned release function when the turn is done. The store mutex is
// never held while waiting on an identity lock, so a slow turn for one
// caller cannot block another caller's Acquire.
func (s *Store) Acquire(phone types.Phone) (*model.Session, func()) {
	for {
		s.mu.Lock()
		e, ok := s.sessions[phone]
		if !ok {
			e = &entry{session: model.NewSession(phone)}
			s.sessions[phone] = e
		}
		s.mu.Unlock()

		e.mu.Lock()
		if e.removed {
			// Evicted or reset while we waited; retry against the map.
			e.mu.Unlock()
			continue
		}
		return e.session, e.mu.Unlock
	}
}

// Peek returns a copy of the session without taking the identity lock.
// The second value is false when no live session exists.
func (s *Store) Peek(phone types.Phone) (model.Session, bool) {
	s.mu.Lock()
	e, ok := s.sessions[phone]
	s.mu.Unlock()
	if !ok {
		return model.Session{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return model.Session{}, false
	}
	return *e.session, true
}

// Reset destroys the live session for the phone, waiting for any in-flight
// turn to finish first. Persisted history is untouched. It reports whether
// a session existed.
func (s *Store) Reset(phone types.Phone) bool {
	s.mu.Lock()
	e, ok := s.sessions[phone]
	s.mu.Unlock()
	if !ok {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return false
	}
	e.removed = true

	s.mu.Lock()
	if current, ok := s.sessions[phone]; ok && current == e {
		delete(s.sessions, phone)
	}
	s.mu.Unlock()

	return true
}

// EvictIdle removes every session whose last activity is older than the
// window. Each candidate's identity lock is taken before removal, so a
// session is never evicted mid-turn; a turn that slips in while we wait
// refreshes the activity timestamp and the session survives.
func (s *Store) EvictIdle(window time.Duration) int {
	cutoff := time.Now().Add(-window)

	s.mu.Lock()
	candidates := make(map[types.Phone]*entry)
	for phone, e := range s.sessions {
		candidates[phone] = e
	}
	s.mu.Unlock()

	evicted := 0
	for phone, e := range candidates {
		e.mu.Lock()
		if e.removed || !e.session.IdleSince(cutoff) {
			e.mu.Unlock()
			continue
		}
		e.removed = true
		e.mu.Unlock()

		s.mu.Lock()
		if current, ok := s.sessions[phone]; ok && current == e {
			delete(s.sessions, phone)
			evicted++
		}
		s.mu.Unlock()
	}
	return evicted
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
