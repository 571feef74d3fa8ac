package oauth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// stateEntry represents an issued login state nonce with expiration
type stateEntry struct {
	expiryTime time.Time
}

// StateStore provides thread-safe storage for web-flow state nonces. Each
// nonce is single-use: Consume removes it.
type StateStore struct {
	states map[string]stateEntry
	ttl    time.Duration
	mutex  sync.Mutex
}

func NewStateStore(ttl time.Duration) *StateStore {
	return &StateStore{
		states: make(map[string]stateEntry),
		ttl:    ttl,
	}
}

// Issue creates a new state nonce for a login redirect
func (s *StateStore) Issue() string {
	state := uuid.New().String()

	s.mutex.Lock()
	s.states[state] = stateEntry{expiryTime: time.Now().Add(s.ttl)}
	s.mutex.Unlock()

	return state
}

// Consume validates and removes a state nonce. Expired or unknown nonces
// return false.
func (s *StateStore) Consume(state string) bool {
	s.mutex.Lock()
	entry, found := s.states[state]
	if found {
		delete(s.states, state)
	}
	s.mutex.Unlock()

	return found && time.Now().Before(entry.expiryTime)
}

// Clear removes expired entries from the store
func (s *StateStore) Clear() {
	s.mutex.Lock()
	for state, entry := range s.states {
		if time.Now().After(entry.expiryTime) {
			delete(s.states, state)
		}
	}
	s.mutex.Unlock()
}
