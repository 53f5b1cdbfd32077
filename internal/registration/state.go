package registration

import "sync"

// State remembers the most recent successful registration. It is owned by
// whoever creates it and passed to the components that need it.
type State struct {
	mu   sync.RWMutex
	last Registration
}

// NewState returns an empty state
func NewState() *State {
	return &State{}
}

// Set replaces the last registration wholesale
func (s *State) Set(r Registration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = r
}

// Last returns the most recent registration, ok is false before the first Set
func (s *State) Last() (Registration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.last != nil
}
