package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pokerledger-server/pkg/game"
	"pokerledger-server/pkg/gamestore"
	"pokerledger-server/pkg/token"
)

const inviteCodeLength = 8

// Manager owns the live sessions in this process, keyed by game ID
// A game has at most one live session here; every command funnels through it,
// which is what gives the single-writer guarantee.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    gamestore.Store
	ids      game.IDSource
	logger   logrus.FieldLogger
}

// NewManager returns a session manager persisting through the given store
func NewManager(store gamestore.Store, logger logrus.FieldLogger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		ids:      uuidSource{},
		logger:   logger,
	}
}

// Create starts a new game and returns its live session
func (m *Manager) Create(ctx context.Context, cfg game.Config) (*Session, error) {
	state, err := game.NewState(cfg, m.ids)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, state); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.newSession(state)
	m.sessions[state.GameID] = s

	m.logger.WithFields(logrus.Fields{
		"gameId":  state.GameID,
		"players": len(state.Players),
	}).Info("game created")

	return s, nil
}

// Get returns the live session for the game, resuming it from the store if
// this process isn't already hosting it
func (m *Manager) Get(ctx context.Context, gameID string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[gameID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	state, err := m.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return m.resume(state), nil
}

// GetByInviteCode returns the live session for the invite code
func (m *Manager) GetByInviteCode(ctx context.Context, inviteCode string) (*Session, error) {
	state, err := m.store.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if s, ok := m.sessions[state.GameID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	return m.resume(state), nil
}

// resume wraps a stored document in a live session, unless another caller
// beat us to it
func (m *Manager) resume(state *game.State) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[state.GameID]; ok {
		return s
	}

	s := m.newSession(state)
	m.sessions[state.GameID] = s
	m.logger.WithField("gameId", state.GameID).Info("game resumed from store")

	return s
}

func (m *Manager) remove(gameID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, gameID)
}

// uuidSource is the production ID generator: UUIDs for games and players,
// short random tokens for invite codes
type uuidSource struct{}

func (uuidSource) GameID() string {
	return uuid.New().String()
}

func (uuidSource) PlayerID() string {
	return uuid.New().String()
}

func (uuidSource) InviteCode() string {
	code, err := token.Generate(inviteCodeLength)
	if err != nil {
		// crypto/rand is broken; nothing sensible to do
		panic(err)
	}

	return code
}
