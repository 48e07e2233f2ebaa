package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Player(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50)

	a.Equal(s.Players[1], s.Player("player-2"))
	a.Nil(s.Player("player-3"))
	a.Nil(s.Player(""))
}

func TestState_Clone(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50, 50)
	a.NoError(s.AddBet(s.Players[0].ID, 5))
	a.NoError(s.UpdateCurrentBet(s.Players[1].ID, 10))

	clone := s.Clone()
	a.Equal(s, clone)

	// mutations on the clone must not reach the live document
	clone.Players[0].Bets[0].Amount = 999
	clone.Players[0].CurrentStack = 0
	*clone.Players[1].CurrentBet = 999
	*clone.DealerIndex = 2
	clone.Players = append(clone.Players, &Player{ID: "extra"})

	a.Equal(5, s.Players[0].Bets[0].Amount)
	a.Equal(45, s.Players[0].CurrentStack)
	a.Equal(10, *s.Players[1].CurrentBet)
	a.Equal(0, *s.DealerIndex)
	a.Equal(3, len(s.Players))
}

func TestState_serializedDocument(t *testing.T) {
	a := assert.New(t)
	s := newTestState(t, 50, 50)
	a.NoError(s.AddBet(s.Players[0].ID, 5))

	b, err := json.Marshal(s)
	a.NoError(err)

	var loaded State
	a.NoError(json.Unmarshal(b, &loaded))
	a.Equal(s.GameID, loaded.GameID)
	a.Equal(s.Players[0].Bets, loaded.Players[0].Bets)
	a.Equal(s.Players[0].TotalBet, loaded.Players[0].TotalBet)
	a.Equal(*s.DealerIndex, *loaded.DealerIndex)
	a.Nil(loaded.EndTime)
}
