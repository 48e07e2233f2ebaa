package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleOf(t *testing.T) {
	a := assert.New(t)

	// four-handed, dealer on seat 0
	a.Equal(RoleDealer, RoleOf(0, 0, 4))
	a.Equal(RoleSmallBlind, RoleOf(1, 0, 4))
	a.Equal(RoleBigBlind, RoleOf(2, 0, 4))
	a.Equal(RoleUnderTheGun, RoleOf(3, 0, 4))

	// roles rotate with the dealer
	a.Equal(RoleDealer, RoleOf(2, 2, 4))
	a.Equal(RoleSmallBlind, RoleOf(3, 2, 4))
	a.Equal(RoleBigBlind, RoleOf(0, 2, 4))
	a.Equal(RoleUnderTheGun, RoleOf(1, 2, 4))

	// five-handed, the seat after UTG holds no role
	a.Equal(RoleNone, RoleOf(4, 0, 5))

	// three-handed, the dealer doubles as UTG conceptually but keeps the
	// dealer role
	a.Equal(RoleDealer, RoleOf(0, 0, 3))
	a.Equal(RoleSmallBlind, RoleOf(1, 0, 3))
	a.Equal(RoleBigBlind, RoleOf(2, 0, 3))
}

func TestRoleOf_headsUp(t *testing.T) {
	a := assert.New(t)

	// heads-up the dealer posts the small blind
	a.Equal(RoleSmallBlind, RoleOf(0, 0, 2))
	a.Equal(RoleBigBlind, RoleOf(1, 0, 2))
	a.Equal(RoleBigBlind, RoleOf(0, 1, 2))
	a.Equal(RoleSmallBlind, RoleOf(1, 1, 2))
}

func TestRoleOf_degenerate(t *testing.T) {
	a := assert.New(t)

	a.Equal(RoleDealer, RoleOf(0, 0, 1))
	a.Equal(RoleNone, RoleOf(1, 0, 1))
	a.Equal(RoleNone, RoleOf(-1, 0, 4))
	a.Equal(RoleNone, RoleOf(4, 0, 4))
	a.Equal(RoleNone, RoleOf(0, 0, 0))
}

func TestRole_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("dealer", RoleDealer.String())
	a.Equal("small-blind", RoleSmallBlind.String())
	a.Equal("big-blind", RoleBigBlind.String())
	a.Equal("under-the-gun", RoleUnderTheGun.String())
	a.Equal("", RoleNone.String())
}

func TestBlindIndexes(t *testing.T) {
	a := assert.New(t)

	a.Equal(1, SmallBlindIndex(0, 4))
	a.Equal(2, BigBlindIndex(0, 4))
	a.Equal(0, SmallBlindIndex(3, 4))
	a.Equal(1, BigBlindIndex(3, 4))

	// heads-up
	a.Equal(1, SmallBlindIndex(1, 2))
	a.Equal(0, BigBlindIndex(1, 2))
}
