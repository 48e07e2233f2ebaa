package session

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"pokerledger-server/pkg/game"
)

// Session is the single writer for one game's state. Commands apply
// atomically under the lock; after each one the new snapshot is handed to the
// store and pushed to every subscriber.
type Session struct {
	mu          sync.Mutex
	manager     *Manager
	state       *game.State
	gameID      string
	subscribers map[chan *game.State]bool
	logger      logrus.FieldLogger
}

func (m *Manager) newSession(state *game.State) *Session {
	return &Session{
		manager:     m,
		state:       state,
		gameID:      state.GameID,
		subscribers: make(map[chan *game.State]bool),
		logger:      m.logger.WithField("gameId", state.GameID),
	}
}

// GameID returns the game's ID. Stable even after the game ends.
func (s *Session) GameID() string {
	return s.gameID
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() *game.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// do applies a command under the lock. A rejected command changes nothing and
// nothing is persisted or broadcast. A persistence failure is logged, not
// returned: the session remains authoritative and the next successful save
// catches the store up (last writer wins).
func (s *Session) do(ctx context.Context, command func(*game.State) error) (*game.State, error) {
	s.mu.Lock()
	if err := command(s.state); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	snapshot := s.state.Clone()
	s.mu.Unlock()

	if err := s.manager.store.Save(ctx, snapshot); err != nil {
		s.logger.WithError(err).Error("could not persist game state")
	}

	s.broadcast(snapshot)
	return snapshot, nil
}

// AddBet commits a wager for the player without staging
func (s *Session) AddBet(ctx context.Context, playerID string, amount int) (*game.State, error) {
	return s.do(ctx, func(state *game.State) error {
		return state.AddBet(playerID, amount)
	})
}

// StageBet stages a candidate wager on the player
func (s *Session) StageBet(ctx context.Context, playerID string, amount int) (*game.State, error) {
	return s.do(ctx, func(state *game.State) error {
		return state.UpdateCurrentBet(playerID, amount)
	})
}

// SubmitBet commits the player's staged wager
func (s *Session) SubmitBet(ctx context.Context, playerID string) (*game.State, error) {
	return s.do(ctx, func(state *game.State) error {
		return state.SubmitBet(playerID)
	})
}

// Fold folds the player for the rest of the hand
func (s *Session) Fold(ctx context.Context, playerID string) (*game.State, error) {
	return s.do(ctx, func(state *game.State) error {
		return state.Fold(playerID)
	})
}

// NextRound advances the betting round
func (s *Session) NextRound(ctx context.Context) (*game.State, error) {
	return s.do(ctx, func(state *game.State) error {
		state.NextRound()
		return nil
	})
}

// RaiseBlinds doubles the blinds
func (s *Session) RaiseBlinds(ctx context.Context) (*game.State, error) {
	return s.do(ctx, func(state *game.State) error {
		state.IncreaseBlindLevel()
		return nil
	})
}

// PostBlinds posts the small and big blinds for the seats left of the dealer.
// This is a convenience layered on AddBet, not a state-machine primitive; a
// table that posts blinds by hand never needs it.
func (s *Session) PostBlinds(ctx context.Context) (*game.State, error) {
	return s.do(ctx, func(state *game.State) error {
		if state.DealerIndex == nil || len(state.Players) == 0 {
			return game.UserError("select a dealer before posting blinds")
		}

		n := len(state.Players)
		smallBlind := state.Players[game.SmallBlindIndex(*state.DealerIndex, n)]
		bigBlind := state.Players[game.BigBlindIndex(*state.DealerIndex, n)]

		if err := state.AddBet(smallBlind.ID, state.Blinds.Small); err != nil {
			return err
		}

		return state.AddBet(bigBlind.ID, state.Blinds.Big)
	})
}

// MarkWinner awards the pot to the player
func (s *Session) MarkWinner(ctx context.Context, playerID string) (*game.State, error) {
	return s.do(ctx, func(state *game.State) error {
		return state.MarkWinner(playerID)
	})
}

// NewHand resets for the next hand
func (s *Session) NewHand(ctx context.Context) (*game.State, error) {
	return s.do(ctx, func(state *game.State) error {
		return state.ResetHand()
	})
}

// BuyIn adds chips to the player's stack
func (s *Session) BuyIn(ctx context.Context, playerID string, amount int) (*game.State, error) {
	return s.do(ctx, func(state *game.State) error {
		return state.BuyIn(playerID, amount)
	})
}

// SetDealer moves the dealer button
func (s *Session) SetDealer(ctx context.Context, index int) (*game.State, error) {
	return s.do(ctx, func(state *game.State) error {
		return state.SetDealer(index)
	})
}

// Join seats an anonymous player from the public invite link
func (s *Session) Join(ctx context.Context, name string, buyIn int) (*game.Player, *game.State, error) {
	var joined game.Player
	state, err := s.do(ctx, func(state *game.State) error {
		p, err := state.AddAnonymousPlayer(name, buyIn, s.manager.ids)
		if err != nil {
			return err
		}

		joined = *p
		return nil
	})

	if err != nil {
		return nil, nil, err
	}

	s.logger.WithField("player", joined.Name).Info("anonymous player joined")
	return &joined, state, nil
}

// End finishes the game, discards the durable copy, and disconnects
// subscribers
func (s *Session) End(ctx context.Context) (*game.State, error) {
	s.mu.Lock()
	s.state.End()
	snapshot := s.state.Clone()
	s.mu.Unlock()

	if err := s.manager.store.Delete(ctx, s.gameID); err != nil {
		s.logger.WithError(err).Error("could not discard stored game")
	}

	s.manager.remove(s.gameID)
	s.broadcast(snapshot)

	s.mu.Lock()
	for ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = make(map[chan *game.State]bool)
	s.mu.Unlock()

	s.logger.Info("game ended")
	return snapshot, nil
}

// Subscribe registers for state snapshots. The returned func unsubscribes;
// the channel is closed when the game ends.
func (s *Session) Subscribe() (<-chan *game.State, func()) {
	ch := make(chan *game.State, 16)

	s.mu.Lock()
	s.subscribers[ch] = true
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.subscribers[ch] {
			delete(s.subscribers, ch)
			close(ch)
		}
	}
}

// broadcast pushes the snapshot to every subscriber. Slow consumers are
// skipped rather than blocking the table.
func (s *Session) broadcast(snapshot *game.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
