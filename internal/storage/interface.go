package storage

import (
	"context"

	"github.com/jsherman999/probe-go/internal/model"
)

// Storage defines the interface for data persistence. The core only relies
// on per-room consistency, never on transactional multi-room operations.
type Storage interface {
	// Game aggregate operations (players are embedded in the game)
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, code model.RoomCode) (*model.Game, error)
	DeleteGame(ctx context.Context, code model.RoomCode) error
	GameExists(ctx context.Context, code model.RoomCode) (bool, error)

	// Turn record operations (append-only audit trail)
	SaveTurnRecord(ctx context.Context, record *model.TurnRecord) error
	GetTurnRecords(ctx context.Context, code model.RoomCode) ([]*model.TurnRecord, error)
	DeleteTurnRecords(ctx context.Context, code model.RoomCode) error

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
