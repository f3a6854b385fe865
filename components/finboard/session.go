package finboard

import (
	"sync"

	"github.com/google/uuid"
)

// Session tracks one viewer's control selections.
type Session struct {
	id string

	mu    sync.RWMutex
	state ControlState
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current selections.
func (s *Session) State() ControlState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Apply replaces the selections and reports which page regions the change
// touches.
func (s *Session) Apply(next ControlState) []Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	regions := AffectedRegions(s.state, next)
	s.state = next
	return regions
}

// SessionStore mints and resolves sessions by identifier.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	initial  func() ControlState
}

// NewSessionStore builds an empty store. initial supplies the state fresh
// sessions start with; nil means the zero ControlState.
func NewSessionStore(initial func() ControlState) *SessionStore {
	if initial == nil {
		initial = func() ControlState { return ControlState{} }
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		initial:  initial,
	}
}

// New creates a session under a fresh identifier.
func (st *SessionStore) New() *Session {
	session := &Session{id: uuid.NewString(), state: st.initial()}
	st.mu.Lock()
	st.sessions[session.id] = session
	st.mu.Unlock()
	return session
}

// Get resolves an existing session.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	return session, ok
}

// GetOrCreate resolves id, minting a new session when id is empty or
// unknown.
func (st *SessionStore) GetOrCreate(id string) *Session {
	if id != "" {
		if session, ok := st.Get(id); ok {
			return session
		}
	}
	return st.New()
}

// Drop removes a session. Unknown ids are a no-op.
func (st *SessionStore) Drop(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len reports the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
