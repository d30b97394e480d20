package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, gameKey(game.RoomCode), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGame(ctx context.Context, code model.RoomCode) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, code model.RoomCode) error {
	return s.client.Del(ctx, gameKey(code)).Err()
}

func (s *Storage) GameExists(ctx context.Context, code model.RoomCode) (bool, error) {
	count, err := s.client.Exists(ctx, gameKey(code)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Turn record operations

func (s *Storage) SaveTurnRecord(ctx context.Context, record *model.TurnRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	key := turnRecordsKey(record.RoomCode)

	// Append and refresh TTL together
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	if s.cfg.TurnRecordTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.TurnRecordTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTurnRecords(ctx context.Context, code model.RoomCode) ([]*model.TurnRecord, error) {
	items, err := s.client.LRange(ctx, turnRecordsKey(code), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.TurnRecord, 0, len(items))
	for _, item := range items {
		var record model.TurnRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, nil
}

func (s *Storage) DeleteTurnRecords(ctx context.Context, code model.RoomCode) error {
	return s.client.Del(ctx, turnRecordsKey(code)).Err()
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	words, err := s.client.LRange(ctx, dictionaryKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}
	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	key := dictionaryKey()

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	if len(words) > 0 {
		args := make([]any, len(words))
		for i, w := range words {
			args[i] = w
		}
		pipe.RPush(ctx, key, args...)
	}
	_, err := pipe.Exec(ctx)
	return err
}
