package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// oauthStateStore is an in-memory store for OAuth CSRF state tokens with
// per-entry expiry. States are single-use: Consume removes the entry.
type oauthStateStore struct {
	mu      sync.Mutex
	entries map[string]stateEntry
	ttl     time.Duration
	nowFunc func() time.Time // Injectable for testing
}

type stateEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// newOAuthStateStore creates a state store whose entries expire after ttl.
func newOAuthStateStore(ttl time.Duration) *oauthStateStore {
	return &oauthStateStore{
		entries: make(map[string]stateEntry),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

// Put records a new state token for the given user and sweeps expired entries.
func (s *oauthStateStore) Put(state string, userID uuid.UUID) {
	now := s.nowFunc()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}

	s.entries[state] = stateEntry{
		userID:    userID,
		expiresAt: now.Add(s.ttl),
	}
}

// Consume removes and returns the user associated with a state token.
// Returns false for unknown or expired states.
func (s *oauthStateStore) Consume(state string) (uuid.UUID, bool) {
	now := s.nowFunc()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[state]
	if !ok {
		return uuid.Nil, false
	}
	delete(s.entries, state)

	if now.After(entry.expiresAt) {
		return uuid.Nil, false
	}

	return entry.userID, true
}
