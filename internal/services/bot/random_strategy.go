package bot

import (
	"github.com/jsherman999/probe-go/internal/dependencies/random"
	"github.com/jsherman999/probe-go/internal/model"
)

// RandomStrategy picks a random opponent, a random untried letter, and a
// random candidate position
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseGuess picks a random valid opponent and a random letter not already
// missed against them
func (s *RandomStrategy) ChooseGuess(view *model.GameView, actorID model.PlayerID) Guess {
	var targets []*model.PlayerView
	for i := range view.Players {
		p := &view.Players[i]
		if p.ID == actorID || p.IsEliminated || !p.HasWord {
			continue
		}
		targets = append(targets, p)
	}
	if len(targets) == 0 {
		return Guess{Letter: "E"}
	}
	target := targets[s.random.Intn(len(targets))]

	var untried []string
	for r := 'A'; r <= 'Z'; r++ {
		token := string(r)
		if !hasToken(target.MissedLetters, token) {
			untried = append(untried, token)
		}
	}
	if !hasToken(target.MissedLetters, model.BlankToken) {
		untried = append(untried, model.BlankToken)
	}
	if len(untried) == 0 {
		return Guess{TargetID: target.ID, Letter: "E"}
	}

	return Guess{
		TargetID: target.ID,
		Letter:   untried[s.random.Intn(len(untried))],
	}
}

// ChoosePosition picks a random candidate
func (s *RandomStrategy) ChoosePosition(candidates []int, kind model.SelectionKind) int {
	if len(candidates) == 0 {
		return -1
	}
	return candidates[s.random.Intn(len(candidates))]
}

var _ Strategy = (*RandomStrategy)(nil)
