package model

import "time"

// EventType identifies the type of event broadcast to a room
type EventType string

const (
	// Room lifecycle events
	EventPlayerJoined  EventType = "player_joined"
	EventPlayerLeft    EventType = "player_left"
	EventBotAdded      EventType = "bot_added"
	EventWordCommitted EventType = "word_committed"
	EventGameStarted   EventType = "game_started"
	EventGameAborted   EventType = "game_aborted"

	// Turn flow events
	EventGuessResult       EventType = "guess_result"
	EventSelectionRequired EventType = "selection_required"
	EventSelectionResolved EventType = "selection_resolved"
	EventTurnChanged       EventType = "turn_changed"
	EventTurnTimeout       EventType = "turn_timeout"
	EventTurnCardDrawn     EventType = "turn_card_drawn"
	EventGameOver          EventType = "game_over"
)

// Event is the base structure for all room-addressed events. Timestamps and
// deadlines are epoch milliseconds so clients render their own countdowns.
type Event struct {
	Type      EventType `json:"type"`
	RoomCode  RoomCode  `json:"room_code"`
	Timestamp int64     `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// EpochMillis converts a time to the wire deadline representation
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// GuessResultPayload describes a resolved letter or word guess
type GuessResultPayload struct {
	ActorID           PlayerID     `json:"actor_id"`
	TargetID          PlayerID     `json:"target_id"`
	Letter            string       `json:"letter,omitempty"`
	Word              string       `json:"word,omitempty"`
	IsCorrect         bool         `json:"is_correct"`
	PositionsRevealed []int        `json:"positions_revealed,omitempty"`
	Points            int          `json:"points"`
	WordCompleted     bool         `json:"word_completed"`
	GameOver          bool         `json:"game_over"`
	FinalRanking      []PlayerRank `json:"final_ranking,omitempty"`
}

// SelectionRequiredPayload announces a secondary decision awaiting a decider
type SelectionRequiredPayload struct {
	Kind       SelectionKind `json:"kind"`
	DeciderID  PlayerID      `json:"decider_id"`
	TargetID   PlayerID      `json:"target_id"`
	Candidates []int         `json:"candidates,omitempty"`
	Deadline   int64         `json:"deadline"`
}

// SelectionResolvedPayload reports the chosen (or auto-selected) position
type SelectionResolvedPayload struct {
	Kind         SelectionKind `json:"kind"`
	DeciderID    PlayerID      `json:"decider_id"`
	Position     int           `json:"position"`
	AutoSelected bool          `json:"auto_selected"`
}

// TurnChangedPayload reports a turn advance and the new deadline
type TurnChangedPayload struct {
	PreviousPlayerID PlayerID `json:"previous_player_id"`
	CurrentPlayerID  PlayerID `json:"current_player_id"`
	RoundNumber      int      `json:"round_number"`
	Deadline         int64    `json:"deadline"`
}

// TurnTimeoutPayload reports a forfeited turn
type TurnTimeoutPayload struct {
	PlayerID PlayerID `json:"player_id"`
}

// TurnCardDrawnPayload reports a card drawn on a missed guess
type TurnCardDrawnPayload struct {
	PlayerID PlayerID     `json:"player_id"`
	Card     TurnCardKind `json:"card"`
}

// GameOverPayload carries the final ranking
type GameOverPayload struct {
	WinnerID PlayerID     `json:"winner_id"`
	Ranking  []PlayerRank `json:"ranking"`
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name"`
	IsBot       bool     `json:"is_bot"`
}

// WordCommittedPayload announces that a player locked in a word (never the
// word itself)
type WordCommittedPayload struct {
	PlayerID   PlayerID `json:"player_id"`
	WordLength int      `json:"word_length"` // padded length
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	Players       []PlayerID `json:"players"`
	FirstPlayerID PlayerID   `json:"first_player_id"`
	Deadline      int64      `json:"deadline"`
}
