package gamestore

import (
	"context"
	"database/sql"
	"encoding/json"

	"pokerledger-server/pkg/db"
	"pokerledger-server/pkg/game"
)

// PostgresStore persists game documents in a JSONB column
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a store backed by the shared database instance
func NewPostgresStore() *PostgresStore {
	return &PostgresStore{db: db.Instance()}
}

// Save upserts the serialized document
func (s *PostgresStore) Save(ctx context.Context, state *game.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO games (uuid, invite_code, state)
VALUES ($1, $2, $3)
ON CONFLICT (uuid) DO UPDATE
SET state   = EXCLUDED.state,
    updated = (NOW() AT TIME ZONE 'UTC')`

	_, err = s.db.ExecContext(ctx, query, state.GameID, state.InviteCode, payload)
	return err
}

// Get returns the document for the game ID
func (s *PostgresStore) Get(ctx context.Context, gameID string) (*game.State, error) {
	const query = `SELECT state FROM games WHERE uuid = $1`
	return getStateByRow(s.db.QueryRowContext(ctx, query, gameID))
}

// GetByInviteCode returns the document for the invite code
func (s *PostgresStore) GetByInviteCode(ctx context.Context, inviteCode string) (*game.State, error) {
	const query = `SELECT state FROM games WHERE invite_code = $1`
	return getStateByRow(s.db.QueryRowContext(ctx, query, inviteCode))
}

// Delete discards the durable copy
func (s *PostgresStore) Delete(ctx context.Context, gameID string) error {
	const query = `DELETE FROM games WHERE uuid = $1`
	_, err := s.db.ExecContext(ctx, query, gameID)
	return err
}

func getStateByRow(row db.Scanner) (*game.State, error) {
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}

		return nil, err
	}

	var state game.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, err
	}

	return &state, nil
}
