package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsherman999/probe-go/internal/dependencies/random"
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/services/dictionary"
)

const (
	// PlayerIDAlphabet is the character set for generating bot player IDs
	PlayerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// PlayerIDLength is the length of generated bot player IDs
	PlayerIDLength = 16

	// DecisionBudget bounds a single strategy call. A slow, panicking, or
	// failed strategy resolves to the deterministic fallback rather than
	// stalling the room.
	DecisionBudget = 2 * time.Second
)

// Service is the bot turn adapter: it invokes strategies on behalf of bot
// players, under the same resolution APIs a human uses, and guarantees a
// safe deterministic action on any strategy failure
type Service struct {
	strategies map[string]Strategy
	dictionary *dictionary.Service
	random     random.Random
	logger     *slog.Logger
}

// NewService creates a new bot Service
func NewService(
	strategies map[string]Strategy,
	dictService *dictionary.Service,
	rnd random.Random,
	logger *slog.Logger,
) *Service {
	return &Service{
		strategies: strategies,
		dictionary: dictService,
		random:     rnd,
		logger:     logger.With(slog.String("component", "bot-service")),
	}
}

// ValidateStrategy checks that a strategy name is registered
func (s *Service) ValidateStrategy(strategy string) error {
	if _, ok := s.strategies[strategy]; !ok {
		return fmt.Errorf("%w: %s", model.ErrUnknownStrategy, strategy)
	}
	return nil
}

// NewBotID generates a player ID for a bot
func (s *Service) NewBotID() model.PlayerID {
	return model.PlayerID("bot-" + s.random.String(PlayerIDLength, PlayerIDAlphabet))
}

// DecideGuess asks the bot's strategy for its turn action. The call is
// bounded and panic-safe; on any failure the fallback guess is used.
func (s *Service) DecideGuess(ctx context.Context, g *model.Game, actor *model.Player) Guess {
	view := g.ViewFor(actor.ID, 0)

	guess, err := callStrategy(ctx, s, func(st Strategy) Guess {
		return st.ChooseGuess(view, actor.ID)
	}, actor)
	if err != nil {
		s.logger.Warn("bot strategy failed, using fallback guess",
			slog.String("room_code", string(g.RoomCode)),
			slog.String("bot_id", string(actor.ID)),
			slog.String("error", err.Error()),
		)
		return s.fallbackGuess(view, actor.ID)
	}

	if g.GetPlayer(guess.TargetID) == nil || guess.TargetID == actor.ID {
		return s.fallbackGuess(view, actor.ID)
	}
	return guess
}

// DecidePosition asks the bot's strategy to resolve a pending selection it
// is the decider of. Failures fall back to the rightmost candidate, the
// same choice a timeout would make.
func (s *Service) DecidePosition(ctx context.Context, sel *model.PendingSelection, decider *model.Player) int {
	pos, err := callStrategy(ctx, s, func(st Strategy) int {
		return st.ChoosePosition(sel.Candidates, sel.Kind)
	}, decider)
	if err != nil || !sel.HasCandidate(pos) {
		return sel.RightmostCandidate()
	}
	return pos
}

// ChooseBotWord picks a dictionary word and padding for a bot player. Word
// choice is deliberately unremarkable: a random playable word with random
// padding filling up to a random total length.
func (s *Service) ChooseBotWord(p *model.Player) (word string, front, back int) {
	word = s.dictionary.RandomWord(0)
	if word == "" {
		// No dictionary loaded; use a fixed safe word
		word = "PROBE"
	}

	budget := model.MaxPaddedLength - len(word)
	if budget > 0 {
		total := s.random.Intn(budget + 1)
		front = s.random.Intn(total + 1)
		back = total - front
	}
	return word, front, back
}

// callStrategy runs one strategy call with a time budget and panic recovery
func callStrategy[T any](ctx context.Context, s *Service, call func(Strategy) T, p *model.Player) (T, error) {
	var zero T

	st, ok := s.strategies[p.BotStrategy]
	if !ok {
		return zero, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, p.BotStrategy)
	}

	ctx, cancel := context.WithTimeout(ctx, DecisionBudget)
	defer cancel()

	done := make(chan T, 1)
	failed := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				failed <- fmt.Errorf("strategy panic: %v", r)
			}
		}()
		done <- call(st)
	}()

	select {
	case result := <-done:
		return result, nil
	case err := <-failed:
		return zero, err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// fallbackGuess is the deterministic safe action: the first valid opponent
// and the most common letter not yet missed against them
func (s *Service) fallbackGuess(view *model.GameView, actorID model.PlayerID) Guess {
	target := pickTarget(view, actorID, func(best, candidate *model.PlayerView) bool {
		return candidate.TurnOrder < best.TurnOrder
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
	return Guess{TargetID: target.ID, Letter: model.BlankToken}
}
