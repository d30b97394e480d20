package memory

import (
	"context"
	"sync"

	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games           map[model.RoomCode]*model.Game
	turnRecords     map[model.RoomCode][]*model.TurnRecord
	dictionaryWords []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:       make(map[model.RoomCode]*model.Game),
		turnRecords: make(map[model.RoomCode][]*model.TurnRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.RoomCode] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, code model.RoomCode) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[code]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, code)
	return nil
}

func (s *Storage) GameExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[code]
	return ok, nil
}

// Turn record operations

func (s *Storage) SaveTurnRecord(ctx context.Context, record *model.TurnRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turnRecords[record.RoomCode] = append(s.turnRecords[record.RoomCode], record)
	return nil
}

func (s *Storage) GetTurnRecords(ctx context.Context, code model.RoomCode) ([]*model.TurnRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.turnRecords[code]
	result := make([]*model.TurnRecord, len(records))
	copy(result, records)
	return result, nil
}

func (s *Storage) DeleteTurnRecords(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turnRecords, code)
	return nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}
