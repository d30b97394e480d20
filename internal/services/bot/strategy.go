package bot

import "github.com/jsherman999/probe-go/internal/model"

// Guess is an action a strategy proposes for a bot's turn: a letter token
// (possibly BLANK) aimed at an opponent
type Guess struct {
	TargetID model.PlayerID
	Letter   string
}

// Strategy defines how a bot acts. It only ever sees the redacted game view,
// never an opponent's secret word.
type Strategy interface {
	// ChooseGuess selects a target and a letter for the bot's turn
	ChooseGuess(view *model.GameView, actorID model.PlayerID) Guess

	// ChoosePosition selects from the candidate positions when the bot is
	// the decider of a pending selection
	ChoosePosition(candidates []int, kind model.SelectionKind) int
}
