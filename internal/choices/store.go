// Package choices holds user-resolved selections and toggles that rule
// processing depends on. The store is owned by the caller and passed into the
// engine by reference; the engine never keeps ambient global state.
package choices

import "sync"

// Store maps stable flag keys to recorded selections and toggle states. It
// is safe for concurrent reads while the UI writes; there is exactly one
// writer per mutation (the user-driven action).
type Store struct {
	mu         sync.RWMutex
	selections map[string][]string
	toggles    map[string]bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		selections: make(map[string][]string),
		toggles:    make(map[string]bool),
	}
}

// Selection returns the recorded values for a flag key, and whether any
// selection has been recorded at all.
func (s *Store) Selection(flag string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, ok := s.selections[flag]
	if !ok {
		return nil, false
	}
	out := make([]string, len(values))
	copy(out, values)
	return out, true
}

// SetSelection records the user's answer for a flag key, replacing any
// previous answer.
func (s *Store) SetSelection(flag string, values ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]string, len(values))
	copy(stored, values)
	s.selections[flag] = stored
}

// ClearSelection forgets the answer for a flag key.
func (s *Store) ClearSelection(flag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selections, flag)
}

// Toggle returns the state of a toggle and whether the user has ever set it.
func (s *Store) Toggle(key string) (enabled, set bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enabled, set = s.toggles[key]
	return enabled, set
}

// SetToggle records a toggle state.
func (s *Store) SetToggle(key string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggles[key] = enabled
}

// Keys returns all flag keys with a recorded selection.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.selections))
	for k := range s.selections {
		keys = append(keys, k)
	}
	return keys
}
