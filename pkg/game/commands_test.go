package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testIDSource struct {
	players int
}

func (t *testIDSource) GameID() string {
	return "game-1"
}

func (t *testIDSource) InviteCode() string {
	return "invite-1"
}

func (t *testIDSource) PlayerID() string {
	t.players++
	return fmt.Sprintf("player-%d", t.players)
}

func newTestState(t *testing.T, buyIns ...int) *State {
	t.Helper()

	seats := make([]Seat, len(buyIns))
	for i, buyIn := range buyIns {
		seats[i] = Seat{Name: string(rune('A' + i)), BuyIn: buyIn}
	}

	s, err := NewState(Config{
		Seats:  seats,
		Blinds: Blinds{Small: 1, Big: 2},
	}, &testIDSource{})
	assert.NoError(t, err)
	assert.NotNil(t, s)

	return s
}

// totalChips is stacks plus committed bets; only BuyIn may change it
func totalChips(s *State) int {
	total := 0
	for _, p := range s.Players {
		total += p.CurrentStack + p.TotalBet
	}

	return total
}

func assertConsistentTotals(t *testing.T, s *State) {
	t.Helper()

	for _, p := range s.Players {
		sum := 0
		for _, bet := range p.Bets {
			sum += bet.Amount
		}

		assert.Equal(t, p.TotalBet, sum, "player %s totalBet", p.Name)
		assert.True(t, p.CurrentStack >= 0, "player %s stack is negative", p.Name)
	}
}

func TestNewState(t *testing.T) {
	a := assert.New(t)

	s := newTestState(t, 50, 50, 50)
	a.Equal("game-1", s.GameID)
	a.Equal("invite-1", s.InviteCode)
	a.Equal(1, s.CurrentRound)
	a.Equal(1, s.CurrentHand)
	a.Equal(0, *s.DealerIndex)
	a.Equal("", s.Winner)
	a.False(s.StartTime.IsZero())
	a.Nil(s.EndTime)

	a.Equal(3, len(s.Players))
	for _, p := range s.Players {
		a.Equal(50, p.BuyIn)
		a.Equal(50, p.CurrentStack)
		a.Equal(0, p.TotalBet)
		a.Empty(p.Bets)
		a.False(p.Folded)
		a.False(p.IsAnonymous)
	}
}

func TestNewState_validation(t *testing.T) {
	runTest := func(t *testing.T, cfg Config, expectedError string) {
		t.Helper()

		s, err := NewState(cfg, &testIDSource{})
		assert.EqualError(t, err, expectedError)
		assert.Nil(t, s)
	}

	blinds := Blinds{Small: 1, Big: 2}

	runTest(t, Config{Blinds: blinds}, "at least one player is required")
	runTest(t, Config{
		Seats:  []Seat{{Name: "Alice", BuyIn: 50}, {Name: "  ", BuyIn: 50}},
		Blinds: blinds,
	}, "all players must have names")
	runTest(t, Config{
		Seats:  []Seat{{Name: "Alice", BuyIn: 50}, {Name: "alice ", BuyIn: 50}},
		Blinds: blinds,
	}, "all player names must be unique")
	runTest(t, Config{
		Seats:  []Seat{{Name: "Alice", BuyIn: 0}},
		Blinds: blinds,
	}, "buy-in amount must be greater than 0")
	runTest(t, Config{
		Seats:  []Seat{{Name: "Alice", BuyIn: 50}},
		Blinds: Blinds{Small: 2, Big: 2},
	}, "big blind must be greater than the small blind")
	runTest(t, Config{
		Seats:  []Seat{{Name: "Alice", BuyIn: 50}},
		Blinds: Blinds{Small: -1, Big: 2},
	}, "blinds cannot be negative")
}

func TestState_basicHand(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50, 50)
	playerA, playerB, playerC := s.Players[0], s.Players[1], s.Players[2]

	// blinds posted by the system
	a.NoError(s.AddBet(playerA.ID, 1))
	a.NoError(s.AddBet(playerB.ID, 2))

	// C stages a call, then commits it
	a.NoError(s.UpdateCurrentBet(playerC.ID, 2))
	a.Equal(2, *playerC.CurrentBet)
	a.Equal(50, playerC.CurrentStack, "staging must not move chips")
	a.NoError(s.SubmitBet(playerC.ID))

	a.Equal(5, TotalPot(s.Players))
	a.Equal(49, playerA.CurrentStack)
	a.Equal(48, playerB.CurrentStack)
	a.Equal(48, playerC.CurrentStack)
	a.Nil(playerC.CurrentBet)
	a.Equal([]Bet{{Round: 1, Amount: 2}}, playerC.Bets)
	assertConsistentTotals(t, s)

	// fold reduces the active set, and the round is then complete
	a.NoError(s.Fold(playerA.ID))
	active := ActivePlayers(s)
	a.Equal([]*Player{playerB, playerC}, active)
	a.True(IsRoundComplete(s, active))

	// winner takes the whole pot, including A's folded chips
	a.NoError(s.MarkWinner(playerB.ID))
	a.Equal(53, playerB.CurrentStack)
	a.Equal(playerB.ID, s.Winner)
	a.Equal(5, TotalPot(s.Players), "bets are not cleared until the hand resets")

	// new hand
	a.NoError(s.ResetHand())
	a.Equal(2, s.CurrentHand)
	a.Equal(1, s.CurrentRound)
	a.Equal("", s.Winner)
	a.Equal(1, *s.DealerIndex)
	for _, p := range s.Players {
		a.Empty(p.Bets)
		a.Equal(0, p.TotalBet)
		a.Nil(p.CurrentBet)
		a.False(p.Folded)
	}
}

func TestState_chipConservation(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 75, 100)
	before := totalChips(s)

	a.NoError(s.AddBet(s.Players[0].ID, 1))
	a.NoError(s.AddBet(s.Players[1].ID, 2))
	a.NoError(s.UpdateCurrentBet(s.Players[2].ID, 10))
	a.NoError(s.SubmitBet(s.Players[2].ID))
	a.NoError(s.Fold(s.Players[0].ID))
	s.NextRound()
	a.NoError(s.UpdateCurrentBet(s.Players[1].ID, 500)) // clamps to all-in
	a.NoError(s.SubmitBet(s.Players[1].ID))
	a.NoError(s.MarkWinner(s.Players[2].ID))

	a.Equal(before+TotalPot(s.Players), totalChips(s), "the awarded pot is double-counted until the reset clears the bets")

	a.NoError(s.ResetHand())
	a.Equal(before, totalChips(s))
	assertConsistentTotals(t, s)

	// only BuyIn injects chips
	a.NoError(s.BuyIn(s.Players[0].ID, 25))
	a.Equal(before+25, totalChips(s))
}

func TestState_allInClamp(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 10, 10)
	p := s.Players[0]

	a.NoError(s.AddBet(p.ID, 9999))
	a.Equal(0, p.CurrentStack)
	a.Equal(10, p.TotalBet)
	a.Equal([]Bet{{Round: 1, Amount: 10}}, p.Bets)
	assertConsistentTotals(t, s)

	// staged bets clamp too
	other := s.Players[1]
	a.NoError(s.UpdateCurrentBet(other.ID, 9999))
	a.Equal(10, *other.CurrentBet)
	a.NoError(s.UpdateCurrentBet(other.ID, -5))
	a.Equal(0, *other.CurrentBet)
}

func TestState_submitBetNoOp(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50)
	p := s.Players[0]

	// nothing staged
	a.NoError(s.SubmitBet(p.ID))
	a.Equal(50, p.CurrentStack)
	a.Empty(p.Bets)

	// zero staged
	a.NoError(s.UpdateCurrentBet(p.ID, 0))
	a.NoError(s.SubmitBet(p.ID))
	a.Equal(50, p.CurrentStack)
	a.Empty(p.Bets)
}

func TestState_foldPersistsAcrossRounds(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50, 50)
	playerB := s.Players[1]

	a.NoError(s.UpdateCurrentBet(playerB.ID, 10))
	a.NoError(s.Fold(playerB.ID))
	a.True(playerB.Folded)
	a.Nil(playerB.CurrentBet, "folding discards the staged bet")

	// folding again is a no-op
	a.NoError(s.Fold(playerB.ID))
	a.True(playerB.Folded)

	s.NextRound()
	a.Equal(2, s.CurrentRound)
	a.True(playerB.Folded, "fold status must survive a round advance")

	a.NoError(s.ResetHand())
	a.False(playerB.Folded, "fold status resets at the hand boundary")
}

func TestState_nextRoundClearsStagedBets(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50)

	a.NoError(s.AddBet(s.Players[0].ID, 5))
	a.NoError(s.UpdateCurrentBet(s.Players[1].ID, 5))

	s.NextRound()
	a.Nil(s.Players[1].CurrentBet)
	a.Equal(5, s.Players[0].TotalBet, "committed bets persist for the whole hand")
	a.Equal([]Bet{{Round: 1, Amount: 5}}, s.Players[0].Bets)
}

func TestState_dealerRotation(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50, 50, 50)
	a.Equal(0, *s.DealerIndex)

	a.NoError(s.ResetHand())
	a.Equal(1, *s.DealerIndex)

	for i := 0; i < 3; i++ {
		a.NoError(s.ResetHand())
	}
	a.Equal(0, *s.DealerIndex)
	a.Equal(5, s.CurrentHand)
}

func TestState_setDealer(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50, 50)

	a.NoError(s.SetDealer(2))
	a.Equal(2, *s.DealerIndex)

	a.EqualError(s.SetDealer(3), "dealer position is not at the table")
	a.Equal(2, *s.DealerIndex)

	a.EqualError(s.SetDealer(-1), "dealer position is not at the table")
	a.Equal(2, *s.DealerIndex)
}

func TestState_increaseBlindLevel(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50)
	a.Equal(Blinds{Small: 1, Big: 2}, s.Blinds)

	s.IncreaseBlindLevel()
	a.Equal(Blinds{Small: 2, Big: 4}, s.Blinds)

	s.IncreaseBlindLevel()
	a.Equal(Blinds{Small: 4, Big: 8}, s.Blinds)
}

func TestState_buyIn(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50)
	p := s.Players[0]

	a.NoError(s.BuyIn(p.ID, 30))
	a.Equal(80, p.CurrentStack)

	// omitted or non-positive amount re-buys the original buy-in
	a.NoError(s.BuyIn(p.ID, 0))
	a.Equal(130, p.CurrentStack)
	a.NoError(s.BuyIn(p.ID, -10))
	a.Equal(180, p.CurrentStack)
}

func TestState_unknownPlayer(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50)
	clone := s.Clone()

	a.Equal(ErrUnknownPlayer, s.AddBet("nope", 10))
	a.Equal(ErrUnknownPlayer, s.UpdateCurrentBet("nope", 10))
	a.Equal(ErrUnknownPlayer, s.SubmitBet("nope"))
	a.Equal(ErrUnknownPlayer, s.Fold("nope"))
	a.Equal(ErrUnknownPlayer, s.MarkWinner("nope"))
	a.Equal(ErrUnknownPlayer, s.BuyIn("nope", 10))

	a.Equal(clone, s.Clone(), "a stale ID must leave the state untouched")
}

func TestState_addAnonymousPlayer(t *testing.T) {
	a := assert.New(t)
	ids := &testIDSource{}
	s, err := NewState(Config{
		Seats:              []Seat{{Name: "Alice", BuyIn: 50}, {Name: "Bob", BuyIn: 50}, {Name: "Carol", BuyIn: 50}},
		Blinds:             Blinds{Small: 1, Big: 2},
		AllowAnonymousJoin: true,
	}, ids)
	a.NoError(err)

	p, err := s.AddAnonymousPlayer("  Dana ", 75, ids)
	a.NoError(err)
	a.Equal("Dana", p.Name)
	a.Equal("player-4", p.ID)
	a.Equal(75, p.CurrentStack)
	a.True(p.IsAnonymous)
	a.Equal(4, len(s.Players))

	runError := func(t *testing.T, name string, buyIn int, expectedError string) {
		t.Helper()

		p, err := s.AddAnonymousPlayer(name, buyIn, ids)
		assert.EqualError(t, err, expectedError)
		assert.Nil(t, p)
		assert.Equal(t, 4, len(s.Players))
	}

	runError(t, "", 50, "please enter your name")
	runError(t, "Eve", 0, "buy-in amount must be greater than 0")
	runError(t, "ALICE", 50, "a player with that name is already seated")
}

func TestState_addAnonymousPlayerDisabled(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50, 50)

	p, err := s.AddAnonymousPlayer("Dana", 50, &testIDSource{})
	a.EqualError(err, "this game doesn't allow anonymous joining")
	a.Nil(p)
	a.Equal(3, len(s.Players))
}

func TestState_end(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50)
	a.False(s.Ended())

	s.End()
	a.True(s.Ended())
	a.Empty(s.Players)
	a.Equal("", s.GameID)
	a.Equal(1, s.CurrentRound)
	a.Equal(1, s.CurrentHand)
	a.NotNil(s.EndTime)
}

func TestState_resetHandWithoutPlayers(t *testing.T) {
	s := &State{}
	assert.EqualError(t, s.ResetHand(), "cannot start a hand without players")
}
