package gamestore

import (
	"context"
	"errors"

	"pokerledger-server/pkg/game"
)

// ErrNotFound happens when no game exists for the given key
var ErrNotFound = errors.New("game not found")

// Store keeps durable copies of serialized game documents
// Writes are last-writer-wins; conflict resolution between concurrent
// editors is not a store concern.
type Store interface {
	// Save upserts the document keyed by its game ID
	Save(ctx context.Context, state *game.State) error

	// Get returns the document for the game ID, or ErrNotFound
	Get(ctx context.Context, gameID string) (*game.State, error)

	// GetByInviteCode returns the document for the invite code, or ErrNotFound
	GetByInviteCode(ctx context.Context, inviteCode string) (*game.State, error)

	// Delete discards the durable copy. Deleting an unknown game is not an
	// error.
	Delete(ctx context.Context, gameID string) error
}
