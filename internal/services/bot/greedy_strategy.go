package bot

import (
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/services/scoring"
)

// letterFrequency orders guesses by English letter frequency
const letterFrequency = "ETAOINSHRDLUCMFWYPVBGKJQXZ"

// GreedyStrategy guesses frequency-ordered letters against the opponent with
// the most hidden positions, and concedes the cheapest position when forced
// to decide a selection against itself
type GreedyStrategy struct {
	scoring *scoring.Service
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(scoringService *scoring.Service) *GreedyStrategy {
	return &GreedyStrategy{scoring: scoringService}
}

// ChooseGuess targets the opponent with the most hidden positions and picks
// the most frequent letter not already missed against them. With the
// alphabet exhausted it falls back to a blank guess.
func (s *GreedyStrategy) ChooseGuess(view *model.GameView, actorID model.PlayerID) Guess {
	target := pickTarget(view, actorID, func(best, candidate *model.PlayerView) bool {
		return hiddenCount(candidate) > hiddenCount(best)
	})
	if target == nil {
		return Guess{Letter: "E"}
	}

	for _, r := range letterFrequency {
		token := string(r)
		if !hasToken(target.MissedLetters, token) {
			return Guess{TargetID: target.ID, Letter: token}
		}
	}

	if !hasToken(target.MissedLetters, model.BlankToken) {
		return Guess{TargetID: target.ID, Letter: model.BlankToken}
	}
	return Guess{TargetID: target.ID, Letter: "E"}
}

// ChoosePosition concedes the lowest-value candidate: the decider is the one
// whose letters are at stake
func (s *GreedyStrategy) ChoosePosition(candidates []int, kind model.SelectionKind) int {
	if len(candidates) == 0 {
		return -1
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if s.scoring.PointsForPosition(c) < s.scoring.PointsForPosition(best) {
			best = c
		}
	}
	return best
}

var _ Strategy = (*GreedyStrategy)(nil)

// pickTarget returns the best guessable opponent per the given preference,
// or nil if none exists
func pickTarget(view *model.GameView, actorID model.PlayerID, better func(best, candidate *model.PlayerView) bool) *model.PlayerView {
	var best *model.PlayerView
	for i := range view.Players {
		p := &view.Players[i]
		if p.ID == actorID || p.IsEliminated || !p.HasWord {
			continue
		}
		if best == nil || better(best, p) {
			best = p
		}
	}
	return best
}

// hiddenCount counts the unrevealed positions in a player view
func hiddenCount(p *model.PlayerView) int {
	count := 0
	for _, token := range p.Revealed {
		if token == "" {
			count++
		}
	}
	return count
}

// hasToken reports whether the token list contains the token
func hasToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}
