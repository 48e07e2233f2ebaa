package game

// Role is a player's table position for the current hand
type Role int

// constants for Role
const (
	RoleNone Role = iota
	RoleDealer
	RoleSmallBlind
	RoleBigBlind
	RoleUnderTheGun
)

func (r Role) String() string {
	switch r {
	case RoleDealer:
		return "dealer"
	case RoleSmallBlind:
		return "small-blind"
	case RoleBigBlind:
		return "big-blind"
	case RoleUnderTheGun:
		return "under-the-gun"
	}

	return ""
}

// RoleOf derives the role of the seat at playerIndex from the dealer position
// and seat count. Roles are pure modular arithmetic over the seating order and
// are never stored per player.
//
// Heads-up, the dealer posts the small blind and the other seat the big
// blind. With a single seat the math degenerates and the seat is just the
// dealer.
func RoleOf(playerIndex, dealerIndex, playerCount int) Role {
	if playerCount < 1 || playerIndex < 0 || playerIndex >= playerCount {
		return RoleNone
	}

	seat := ((playerIndex-dealerIndex)%playerCount + playerCount) % playerCount

	if playerCount == 1 {
		if seat == 0 {
			return RoleDealer
		}

		return RoleNone
	}

	if playerCount == 2 {
		switch seat {
		case 0:
			return RoleSmallBlind // dealer posts the small blind heads-up
		case 1:
			return RoleBigBlind
		}

		return RoleNone
	}

	switch seat {
	case 0:
		return RoleDealer
	case 1:
		return RoleSmallBlind
	case 2:
		return RoleBigBlind
	case 3:
		return RoleUnderTheGun
	}

	return RoleNone
}

// SmallBlindIndex is the seat that posts the small blind
func SmallBlindIndex(dealerIndex, playerCount int) int {
	if playerCount == 2 {
		return dealerIndex
	}

	return (dealerIndex + 1) % playerCount
}

// BigBlindIndex is the seat that posts the big blind
func BigBlindIndex(dealerIndex, playerCount int) int {
	if playerCount == 2 {
		return (dealerIndex + 1) % playerCount
	}

	return (dealerIndex + 2) % playerCount
}
