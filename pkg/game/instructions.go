package game

import "fmt"

// roundInstructions holds one entry per betting round. Pre-flop (index 0) is
// a format string filled in with blind seats and amounts.
var roundInstructions = [...]string{
	"Pre-flop betting: Small blind (%s) bet %d, Big blind (%s) bet %d. Players must call, raise, or fold.",
	"Flop: First three community cards are dealt. Continue betting round.",
	"Turn: Fourth community card is dealt. Continue betting round.",
	"River: Final community card is dealt. Final betting round.",
	"Showdown: All players reveal their hands. Select the winner to award the pot.",
}

// NextActionInstructions explains what should happen next at the table.
// Rounds past showdown reuse the showdown text.
func NextActionInstructions(s *State, active []*Player) string {
	if s.Winner != "" {
		return "Hand complete! Start the next hand."
	}

	if len(active) <= 1 {
		return "Only one player remains! End the hand and select the winner."
	}

	if s.DealerIndex == nil || len(s.Players) == 0 {
		return "Start the game by selecting a dealer."
	}

	index := s.CurrentRound - 1
	if index < 0 {
		index = 0
	} else if index >= len(roundInstructions) {
		index = len(roundInstructions) - 1
	}

	if index == 0 {
		n := len(s.Players)
		smallBlind := s.Players[SmallBlindIndex(*s.DealerIndex, n)]
		bigBlind := s.Players[BigBlindIndex(*s.DealerIndex, n)]
		return fmt.Sprintf(roundInstructions[0], smallBlind.Name, s.Blinds.Small, bigBlind.Name, s.Blinds.Big)
	}

	return roundInstructions[index]
}

// CurrentActionDescription is a short line describing whose turn it is
func CurrentActionDescription(s *State, activePlayer *Player) string {
	if s.Winner != "" {
		return "Hand complete. Start a new hand."
	}

	if activePlayer == nil {
		return "No active players. Start a new hand."
	}

	return fmt.Sprintf("%s's turn to bet", activePlayer.Name)
}

// NextActionText is the label for the primary action button
func NextActionText(s *State, activePlayer *Player) string {
	if s.Winner != "" {
		return "Start new hand"
	}

	if s.CurrentRound >= RoundShowdown {
		return "Select Winner"
	}

	if activePlayer != nil {
		return fmt.Sprintf("%s's turn", activePlayer.Name)
	}

	return "Next player's turn"
}
