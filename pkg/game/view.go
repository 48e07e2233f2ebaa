package game

import "fmt"

// Derived views are pure reads over a snapshot. Nothing in this file mutates
// state, and the commands never call back into these helpers (TotalPot aside,
// which MarkWinner shares so the displayed pot and the awarded pot agree).

// Betting round numbers. A hand runs pre-flop through showdown and then
// resets via ResetHand.
const (
	RoundPreFlop  = 1
	RoundFlop     = 2
	RoundTurn     = 3
	RoundRiver    = 4
	RoundShowdown = 5
)

// TotalPot is the sum of every player's committed bets for the current hand.
// Folded players' chips stay in the pot.
func TotalPot(players []*Player) int {
	pot := 0
	for _, p := range players {
		pot += p.TotalBet
	}

	return pot
}

// RoundLabel returns a display label for the betting round
func RoundLabel(round int) string {
	switch round {
	case RoundPreFlop:
		return "Pre-flop"
	case RoundFlop:
		return "Flop"
	case RoundTurn:
		return "Turn"
	case RoundRiver:
		return "River"
	case RoundShowdown:
		return "Showdown"
	}

	return fmt.Sprintf("Round %d", round)
}

// ActivePlayers returns the players still in the hand
func ActivePlayers(s *State) []*Player {
	active := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if !p.Folded {
			active = append(active, p)
		}
	}

	return active
}

// RoundContribution is the amount the player has committed in the given round
func RoundContribution(p *Player, round int) int {
	total := 0
	for _, bet := range p.Bets {
		if bet.Round == round {
			total += bet.Amount
		}
	}

	return total
}

// HighestContribution is the largest per-player contribution in the given
// round among the provided players
func HighestContribution(players []*Player, round int) int {
	highest := 0
	for _, p := range players {
		if c := RoundContribution(p, round); c > highest {
			highest = c
		}
	}

	return highest
}

// IsRoundComplete reports whether the current betting round can advance:
// either the hand is effectively over (one player left, or a winner marked),
// or every active player has matched the highest contribution this round.
// All-in players are exempt from matching.
func IsRoundComplete(s *State, active []*Player) bool {
	if len(active) <= 1 {
		return true
	}

	if s.Winner != "" {
		return true
	}

	highest := HighestContribution(active, s.CurrentRound)
	for _, p := range active {
		if p.CurrentStack == 0 {
			continue
		}

		if RoundContribution(p, s.CurrentRound) != highest {
			return false
		}
	}

	return true
}

// CallAmount is what the player still owes to match the highest bet this
// round
func CallAmount(p *Player, round, highestBet int) int {
	owed := highestBet - RoundContribution(p, round)
	if owed < 0 {
		return 0
	}

	return owed
}

// MinRaiseAmount is the smallest legal raise: call plus one big blind
func MinRaiseAmount(callAmount, bigBlind int) int {
	return callAmount + bigBlind
}
