package gamestore

import (
	"context"
	"sync"

	"pokerledger-server/pkg/game"
)

// MemoryStore keeps game documents in memory. Suitable for tests and for
// running without a database; documents do not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*game.State
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string]*game.State)}
}

// Save upserts the document
func (s *MemoryStore) Save(_ context.Context, state *game.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[state.GameID] = state.Clone()
	return nil
}

// Get returns the document for the game ID
func (s *MemoryStore) Get(_ context.Context, gameID string) (*game.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.games[gameID]
	if !ok {
		return nil, ErrNotFound
	}

	return state.Clone(), nil
}

// GetByInviteCode returns the document for the invite code
func (s *MemoryStore) GetByInviteCode(_ context.Context, inviteCode string) (*game.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, state := range s.games {
		if state.InviteCode == inviteCode {
			return state.Clone(), nil
		}
	}

	return nil, ErrNotFound
}

// Delete discards the document
func (s *MemoryStore) Delete(_ context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, gameID)
	return nil
}
