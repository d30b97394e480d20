package game

import "github.com/jsherman999/probe-go/internal/model"

// Outcome is the result of resolving a guess, a selection, or a timeout.
// Either Result is set (a terminal resolution) or Selection is set (a
// secondary decision is required before the guess can terminate); a miss
// that draws a turn card carries both.
type Outcome struct {
	// Result is the broadcastable guess result, nil while a duplicate-letter
	// or blank selection is still pending
	Result *model.GuessResultPayload

	// Selection is a pending selection that must be registered with the
	// coordinator. Its Deadline is unset; the coordinator owns deadlines.
	Selection *model.PendingSelection

	// CardDrawn is set when a missed guess drew a turn card
	CardDrawn model.TurnCardKind

	// TurnEnds reports whether the turn passes to the next player once any
	// pending selection is out of the way
	TurnEnds bool

	// GameOver reports that the resolution left one active player standing
	GameOver bool
}
