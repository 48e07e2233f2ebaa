package game

import "errors"

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// ErrUnknownPlayer is returned when a command references a player ID that is
// not seated at the table. The state is left unchanged.
var ErrUnknownPlayer = errors.New("unknown player")
