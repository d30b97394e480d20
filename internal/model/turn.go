package model

import "time"

// TurnRecord is a write-once audit entry appended for every resolved guess
type TurnRecord struct {
	ID         string
	RoomCode   RoomCode
	TurnNumber int
	ActorID    PlayerID
	TargetID   PlayerID

	// Exactly one of GuessedLetter / GuessedWord is set
	GuessedLetter string
	GuessedWord   string

	IsCorrect         bool
	PositionsRevealed []int
	PointsScored      int

	CreatedAt time.Time
}
