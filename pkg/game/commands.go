package game

import (
	"strings"
	"time"
)

// Commands mutate the state in place. Every command either fully applies or
// leaves the document untouched; expected misuse (stale IDs, disabled
// features, out-of-range indexes) is rejected with an error, never a panic.

// AddBet commits a wager for the player in one step, without staging. This is
// how system-posted wagers (blinds) enter the pot.
// The amount is clamped to the player's stack; betting the whole stack is an
// all-in and simply leaves the stack at zero.
func (s *State) AddBet(playerID string, amount int) error {
	p := s.Player(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}

	s.commitBet(p, amount)
	return nil
}

// UpdateCurrentBet stages a candidate wager on the player. No chips move
// until SubmitBet. The staged amount is clamped to [0, stack].
func (s *State) UpdateCurrentBet(playerID string, amount int) error {
	p := s.Player(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}

	if amount < 0 {
		amount = 0
	} else if amount > p.CurrentStack {
		amount = p.CurrentStack
	}

	p.CurrentBet = &amount
	return nil
}

// SubmitBet commits the player's staged wager. Submitting with nothing staged
// (or zero staged) is a no-op.
func (s *State) SubmitBet(playerID string) error {
	p := s.Player(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}

	if p.CurrentBet == nil || *p.CurrentBet == 0 {
		return nil
	}

	amount := *p.CurrentBet
	p.CurrentBet = nil
	s.commitBet(p, amount)
	return nil
}

// commitBet moves chips from the player's stack into the pot, recording the
// wager against the current round. The clamp keeps CurrentStack >= 0.
func (s *State) commitBet(p *Player, amount int) {
	if amount > p.CurrentStack {
		amount = p.CurrentStack
	}

	if amount <= 0 {
		return
	}

	p.CurrentStack -= amount
	p.Bets = append(p.Bets, Bet{Round: s.CurrentRound, Amount: amount})
	p.TotalBet += amount
}

// Fold removes the player from the active rotation for the rest of the hand.
// Chips already committed stay in the pot. Folding twice is a no-op.
func (s *State) Fold(playerID string) error {
	p := s.Player(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}

	p.Folded = true
	p.CurrentBet = nil
	return nil
}

// NextRound advances to the next betting round. Staged bets are discarded;
// committed bets and fold status persist for the rest of the hand.
func (s *State) NextRound() {
	s.CurrentRound++
	for _, p := range s.Players {
		p.CurrentBet = nil
	}
}

// IncreaseBlindLevel doubles both blinds. When to raise them is the caller's
// policy.
func (s *State) IncreaseBlindLevel() {
	s.Blinds.Small *= 2
	s.Blinds.Big *= 2
}

// MarkWinner awards the whole pot to the player. Folded players' chips stay
// in the pot and transfer with it. Bets are not cleared until ResetHand.
func (s *State) MarkWinner(playerID string) error {
	p := s.Player(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}

	p.CurrentStack += TotalPot(s.Players)
	s.Winner = playerID
	return nil
}

// ResetHand starts the next hand: clears the winner, resets every player's
// bets and fold status, and advances the dealer button one seat.
func (s *State) ResetHand() error {
	if len(s.Players) == 0 {
		return UserError("cannot start a hand without players")
	}

	dealerIndex := 0
	if s.DealerIndex != nil {
		dealerIndex = (*s.DealerIndex + 1) % len(s.Players)
	}

	s.Winner = ""
	s.CurrentRound = 1
	s.CurrentHand++
	s.DealerIndex = &dealerIndex

	for _, p := range s.Players {
		p.Bets = []Bet{}
		p.TotalBet = 0
		p.CurrentBet = nil
		p.Folded = false
	}

	return nil
}

// BuyIn adds chips to the player's stack. An amount <= 0 re-buys the player's
// original buy-in. This is the only command that increases the total chips in
// play.
func (s *State) BuyIn(playerID string, amount int) error {
	p := s.Player(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}

	if amount <= 0 {
		amount = p.BuyIn
	}

	p.CurrentStack += amount
	return nil
}

// SetDealer moves the dealer button to the given seat. An out-of-range index
// is rejected.
func (s *State) SetDealer(index int) error {
	if index < 0 || index >= len(s.Players) {
		return UserError("dealer position is not at the table")
	}

	s.DealerIndex = &index
	return nil
}

// AddAnonymousPlayer seats a player who joined through the public invite
// link. The new player starts clean and is flagged as anonymous.
func (s *State) AddAnonymousPlayer(name string, buyIn int, ids IDSource) (*Player, error) {
	if !s.AllowAnonymousJoin {
		return nil, UserError("this game doesn't allow anonymous joining")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, UserError("please enter your name")
	}

	if buyIn <= 0 {
		return nil, UserError("buy-in amount must be greater than 0")
	}

	for _, p := range s.Players {
		if strings.EqualFold(p.Name, name) {
			return nil, UserError("a player with that name is already seated")
		}
	}

	p := &Player{
		ID:           ids.PlayerID(),
		Name:         name,
		BuyIn:        buyIn,
		CurrentStack: buyIn,
		Bets:         []Bet{},
		IsAnonymous:  true,
	}

	s.Players = append(s.Players, p)
	return p, nil
}

// End resets the document to an empty, ended session
func (s *State) End() {
	now := time.Now()
	*s = State{
		Blinds:       Blinds{Small: 1, Big: 2},
		Players:      []*Player{},
		CurrentRound: 1,
		CurrentHand:  1,
		EndTime:      &now,
	}
}
