package game

import (
	"strings"
	"time"
)

// Bet is a single committed wager tagged with the betting round it was made in
type Bet struct {
	Round  int `json:"round"`
	Amount int `json:"amount"`
}

// Blinds are the forced wagers posted at the start of each hand
type Blinds struct {
	Small int `json:"small"`
	Big   int `json:"big"`
}

// Player is a seat at the table
// Seating order is the order of State.Players and is never re-sorted
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// BuyIn is the original buy-in amount, used as the suggested re-buy
	BuyIn        int `json:"buyIn"`
	CurrentStack int `json:"currentStack"`

	// Bets is append-only for the duration of a hand
	Bets     []Bet `json:"bets"`
	TotalBet int   `json:"totalBet"`

	// CurrentBet is a staged wager the player is still composing. It has not
	// moved any chips until SubmitBet commits it.
	CurrentBet *int `json:"currentBet,omitempty"`

	Folded      bool `json:"folded"`
	IsAnonymous bool `json:"isAnonymous"`
}

// State is the canonical document for a single game session
type State struct {
	GameID             string `json:"gameId"`
	InviteCode         string `json:"inviteCode"`
	AllowAnonymousJoin bool   `json:"allowAnonymousJoin"`

	Players      []*Player `json:"players"`
	Blinds       Blinds    `json:"blinds"`
	CurrentRound int       `json:"currentRound"`
	CurrentHand  int       `json:"currentHand"`

	// DealerIndex is nil until the first hand starts
	DealerIndex *int `json:"dealerIndex,omitempty"`

	// Winner holds a player ID between MarkWinner and ResetHand
	Winner string `json:"winner,omitempty"`

	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
}

// IDSource generates the identifiers the game needs. The game only requires
// uniqueness, not any particular format.
type IDSource interface {
	GameID() string
	PlayerID() string
	InviteCode() string
}

// Seat is a player definition at setup time
type Seat struct {
	Name  string `json:"name"`
	BuyIn int    `json:"buyIn"`
}

// Config configures a new game
type Config struct {
	Seats              []Seat `json:"seats"`
	Blinds             Blinds `json:"blinds"`
	AllowAnonymousJoin bool   `json:"allowAnonymousJoin"`
}

// NewState starts a new game session from the provided config
// Seat count limits beyond "at least one" are a caller concern; the single
// seat floor keeps the rotation math well-defined.
func NewState(cfg Config, ids IDSource) (*State, error) {
	if len(cfg.Seats) < 1 {
		return nil, UserError("at least one player is required")
	}

	if err := validateBlinds(cfg.Blinds); err != nil {
		return nil, err
	}

	players := make([]*Player, len(cfg.Seats))
	seen := make(map[string]bool, len(cfg.Seats))
	for i, seat := range cfg.Seats {
		name := strings.TrimSpace(seat.Name)
		if name == "" {
			return nil, UserError("all players must have names")
		}

		if seen[strings.ToLower(name)] {
			return nil, UserError("all player names must be unique")
		}
		seen[strings.ToLower(name)] = true

		if seat.BuyIn <= 0 {
			return nil, UserError("buy-in amount must be greater than 0")
		}

		players[i] = &Player{
			ID:           ids.PlayerID(),
			Name:         name,
			BuyIn:        seat.BuyIn,
			CurrentStack: seat.BuyIn,
			Bets:         []Bet{},
		}
	}

	dealerIndex := 0
	return &State{
		GameID:             ids.GameID(),
		InviteCode:         ids.InviteCode(),
		AllowAnonymousJoin: cfg.AllowAnonymousJoin,
		Players:            players,
		Blinds:             cfg.Blinds,
		CurrentRound:       1,
		CurrentHand:        1,
		DealerIndex:        &dealerIndex,
		StartTime:          time.Now(),
	}, nil
}

func validateBlinds(b Blinds) error {
	if b.Small < 0 || b.Big < 0 {
		return UserError("blinds cannot be negative")
	}

	if b.Big <= b.Small {
		return UserError("big blind must be greater than the small blind")
	}

	return nil
}

// Player returns the player with the given ID, or nil
func (s *State) Player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// Ended returns true once End has been called
func (s *State) Ended() bool {
	return s.EndTime != nil
}

// Clone returns a deep copy of the state
// Snapshots handed to viewers must not alias the live document.
func (s *State) Clone() *State {
	clone := *s

	clone.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp := *p
		cp.Bets = make([]Bet, len(p.Bets))
		copy(cp.Bets, p.Bets)

		if p.CurrentBet != nil {
			staged := *p.CurrentBet
			cp.CurrentBet = &staged
		}

		clone.Players[i] = &cp
	}

	if s.DealerIndex != nil {
		dealerIndex := *s.DealerIndex
		clone.DealerIndex = &dealerIndex
	}

	if s.EndTime != nil {
		endTime := *s.EndTime
		clone.EndTime = &endTime
	}

	return &clone
}
