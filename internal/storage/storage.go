package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/emberforge/adventure-engine/pkg/game"
)

// Storage is the persistence boundary for game sessions. A session
// snapshot must round-trip losslessly; the ordered collections in the
// world model encode as arrays for exactly that reason.
type Storage interface {
	// Ping tests the storage connection.
	Ping(ctx context.Context) error

	// Close closes the storage connection.
	Close() error

	// SaveGame stores a session snapshot under its ID.
	SaveGame(ctx context.Context, g *game.Game) error

	// LoadGame retrieves a session by ID. Returns nil when the session
	// does not exist.
	LoadGame(ctx context.Context, id uuid.UUID) (*game.Game, error)

	// DeleteGame removes a session by ID.
	DeleteGame(ctx context.Context, id uuid.UUID) error
}
