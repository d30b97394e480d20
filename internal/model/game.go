package model

import (
	"sort"
	"time"
)

// RoomCode is the human-readable key identifying a game room
type RoomCode string

// GameStatus represents the current phase of a game
type GameStatus string

const (
	GameStatusWaiting       GameStatus = "waiting"        // Players joining
	GameStatusWordSelection GameStatus = "word_selection" // Players committing secret words
	GameStatusActive        GameStatus = "active"         // Turns in progress
	GameStatusCompleted     GameStatus = "completed"      // One player left unrevealed
)

// Turn timer bounds (seconds)
const (
	MinTurnTimerSeconds     = 10
	MaxTurnTimerSeconds     = 1800
	DefaultTurnTimerSeconds = 60
)

// TurnCardKind identifies an event card drawn on a missed guess
type TurnCardKind string

const (
	TurnCardNone TurnCardKind = ""
	// TurnCardExposeSelf forces the drawing player to reveal one of their own
	// hidden positions; the choice is theirs (a self-expose selection)
	TurnCardExposeSelf TurnCardKind = "expose_self"
)

// Game is the per-room aggregate: the unit of mutation and persistence.
// All players belong to exactly one game.
type Game struct {
	RoomCode         RoomCode
	Status           GameStatus
	HostID           PlayerID
	TurnTimerSeconds int

	CurrentTurnPlayerID  PlayerID
	CurrentTurnStartedAt time.Time
	RoundNumber          int
	TurnCount            int // total resolved guesses, used as turn record sequence

	// PendingTurnCard is set when a miss drew a card that forces a
	// sub-selection before the next turn proceeds
	PendingTurnCard TurnCardKind

	Players []*Player

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetPlayer returns the player with the given ID, or nil
func (g *Game) GetPlayer(id PlayerID) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayersInTurnOrder returns all players sorted by turn order
func (g *Game) PlayersInTurnOrder() []*Player {
	players := make([]*Player, len(g.Players))
	copy(players, g.Players)
	sort.Slice(players, func(i, j int) bool {
		return players[i].TurnOrder < players[j].TurnOrder
	})
	return players
}

// ActivePlayerCount returns the number of non-eliminated players
func (g *Game) ActivePlayerCount() int {
	count := 0
	for _, p := range g.Players {
		if !p.IsEliminated {
			count++
		}
	}
	return count
}

// LastActivePlayer returns the single remaining non-eliminated player, or nil
// if the game is not down to one
func (g *Game) LastActivePlayer() *Player {
	var last *Player
	for _, p := range g.Players {
		if !p.IsEliminated {
			if last != nil {
				return nil
			}
			last = p
		}
	}
	return last
}

// NextActivePlayer returns the next non-eliminated player after the given one
// in turn order, wrapping around. Returns empty if no active player exists.
func (g *Game) NextActivePlayer(after PlayerID) PlayerID {
	ordered := g.PlayersInTurnOrder()
	if len(ordered) == 0 {
		return ""
	}

	start := 0
	for i, p := range ordered {
		if p.ID == after {
			start = i
			break
		}
	}

	for offset := 1; offset <= len(ordered); offset++ {
		candidate := ordered[(start+offset)%len(ordered)]
		if !candidate.IsEliminated {
			return candidate.ID
		}
	}
	return ""
}

// AllWordsCommitted reports whether every player has locked in a word
func (g *Game) AllWordsCommitted() bool {
	if len(g.Players) == 0 {
		return false
	}
	for _, p := range g.Players {
		if !p.HasCommittedWord() {
			return false
		}
	}
	return true
}

// EffectiveTurnSeconds returns the room's configured human turn timer,
// clamped to the allowed range and defaulted when unset
func (g *Game) EffectiveTurnSeconds() int {
	s := g.TurnTimerSeconds
	if s == 0 {
		return DefaultTurnTimerSeconds
	}
	if s < MinTurnTimerSeconds {
		return MinTurnTimerSeconds
	}
	if s > MaxTurnTimerSeconds {
		return MaxTurnTimerSeconds
	}
	return s
}

// PlayerRank is one entry in a completed game's final ranking
type PlayerRank struct {
	Rank        int      `json:"rank"`
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name"`
	Score       int      `json:"score"`
	Survived    bool     `json:"survived"`
}
