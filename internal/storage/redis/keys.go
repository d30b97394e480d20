package redis

import (
	"fmt"

	"github.com/jsherman999/probe-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "probe"

// gameKey returns the Redis key for a Game aggregate
func gameKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, code)
}

// turnRecordsKey returns the Redis key for a room's turn record list
func turnRecordsKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:turns:%s", keyPrefix, code)
}

// dictionaryKey returns the Redis key for the dictionary word list
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
