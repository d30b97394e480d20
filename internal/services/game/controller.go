package game

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jsherman999/probe-go/internal/dependencies/clock"
	"github.com/jsherman999/probe-go/internal/dependencies/random"
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/services/scoring"
	"github.com/jsherman999/probe-go/internal/storage"
)

// turnCardOdds: one miss in this many draws a turn card
const turnCardOdds = 4

// Controller is the guess resolution engine. It operates on a Game aggregate
// already loaded under the room's single-writer lock; callers persist the
// aggregate after a successful resolution. Rejected operations never mutate
// state, so retries are safe.
type Controller struct {
	storage storage.Storage
	scoring *scoring.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new guess resolution Controller
func NewController(
	store storage.Storage,
	scoringService *scoring.Service,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: store,
		scoring: scoringService,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "game-engine")),
	}
}

// checkGuess validates the shared guess preconditions and returns the actor
// and target players
func (c *Controller) checkGuess(g *model.Game, actorID, targetID model.PlayerID) (*model.Player, *model.Player, error) {
	if g.Status == model.GameStatusCompleted {
		return nil, nil, model.ErrGameComplete
	}
	if g.Status != model.GameStatusActive {
		return nil, nil, model.ErrGameNotActive
	}

	actor := g.GetPlayer(actorID)
	if actor == nil {
		return nil, nil, model.ErrNotInRoom
	}
	if g.CurrentTurnPlayerID != actorID {
		return nil, nil, model.ErrNotPlayerTurn
	}

	if targetID == actorID {
		return nil, nil, model.ErrInvalidTarget
	}
	target := g.GetPlayer(targetID)
	if target == nil {
		return nil, nil, model.ErrInvalidTarget
	}
	if target.IsEliminated {
		return nil, nil, model.ErrTargetEliminated
	}

	return actor, target, nil
}

// ResolveLetterGuess resolves a letter (or BLANK) guess against a target.
// A single matching position resolves immediately; several matches require
// the target to pick which one is revealed, returned as a pending selection.
func (c *Controller) ResolveLetterGuess(ctx context.Context, g *model.Game, actorID, targetID model.PlayerID, letter string) (*Outcome, error) {
	actor, target, err := c.checkGuess(g, actorID, targetID)
	if err != nil {
		return nil, err
	}

	r, err := model.NormalizeGuessLetter(letter)
	if err != nil {
		return nil, err
	}
	token := model.LetterToken(r)

	candidates := target.PositionsOf(r)

	if len(candidates) == 0 {
		return c.resolveMiss(ctx, g, actor, target, token)
	}

	if len(candidates) == 1 {
		g.TurnCount++
		result := c.applyReveal(g, actor, target, candidates, true)
		result.Letter = token
		c.recordTurn(ctx, g, &model.TurnRecord{
			RoomCode:          g.RoomCode,
			ActorID:           actor.ID,
			TargetID:          target.ID,
			GuessedLetter:     token,
			IsCorrect:         true,
			PositionsRevealed: candidates,
			PointsScored:      result.Points,
		})
		return &Outcome{
			Result:   result,
			TurnEnds: result.WordCompleted,
			GameOver: result.GameOver,
		}, nil
	}

	// Several positions match: the target decides which is revealed. No
	// score is applied and the turn does not advance until then.
	kind := model.SelectionDuplicateLetter
	if r == model.BlankRune {
		kind = model.SelectionBlank
	}
	return &Outcome{
		Selection: &model.PendingSelection{
			Kind:        kind,
			RoomCode:    g.RoomCode,
			InitiatorID: actor.ID,
			DeciderID:   target.ID,
			TargetID:    target.ID,
			Letter:      token,
			Candidates:  candidates,
		},
	}, nil
}

// resolveMiss records a missed letter and may draw a turn card forcing the
// actor to expose one of their own positions
func (c *Controller) resolveMiss(ctx context.Context, g *model.Game, actor, target *model.Player, token string) (*Outcome, error) {
	target.AddMissedLetter(token)
	g.TurnCount++
	g.UpdatedAt = c.clock.Now()

	c.recordTurn(ctx, g, &model.TurnRecord{
		RoomCode:      g.RoomCode,
		ActorID:       actor.ID,
		TargetID:      target.ID,
		GuessedLetter: token,
		IsCorrect:     false,
	})

	outcome := &Outcome{
		Result: &model.GuessResultPayload{
			ActorID:  actor.ID,
			TargetID: target.ID,
			Letter:   token,
		},
		TurnEnds: true,
	}

	// A miss occasionally draws a card forcing the actor to expose one of
	// their own hidden positions
	if c.random.Intn(turnCardOdds) == turnCardOdds-1 {
		hidden := actor.HiddenPositions()
		if actor.HasCommittedWord() && len(hidden) > 0 {
			g.PendingTurnCard = model.TurnCardExposeSelf
			outcome.CardDrawn = model.TurnCardExposeSelf
			outcome.Selection = &model.PendingSelection{
				Kind:        model.SelectionSelfExpose,
				RoomCode:    g.RoomCode,
				InitiatorID: actor.ID,
				DeciderID:   actor.ID,
				TargetID:    actor.ID,
				Candidates:  hidden,
			}
		}
	}

	return outcome, nil
}

// ResolveWordGuess resolves a full-word guess. A repeat of an already-tried
// word is rejected outright; any incorrect guess is recorded and forfeits
// the turn without revealing anything.
func (c *Controller) ResolveWordGuess(ctx context.Context, g *model.Game, actorID, targetID model.PlayerID, word string) (*Outcome, error) {
	actor, target, err := c.checkGuess(g, actorID, targetID)
	if err != nil {
		return nil, err
	}

	word = strings.ToUpper(strings.TrimSpace(word))
	if err := model.ValidateSecretWord(word); err != nil {
		return nil, err
	}
	if target.HasGuessedWord(word) {
		return nil, model.ErrWordAlreadyGuessed
	}

	correct := word == target.SecretWord && target.MatchesRevealed(word)

	if !correct {
		target.AddGuessedWord(word)
		g.TurnCount++
		g.UpdatedAt = c.clock.Now()

		c.recordTurn(ctx, g, &model.TurnRecord{
			RoomCode:    g.RoomCode,
			ActorID:     actor.ID,
			TargetID:    target.ID,
			GuessedWord: word,
			IsCorrect:   false,
		})

		// A wrong word guess always forfeits the turn
		return &Outcome{
			Result: &model.GuessResultPayload{
				ActorID:  actor.ID,
				TargetID: target.ID,
				Word:     word,
			},
			TurnEnds: true,
		}, nil
	}

	positions := target.HiddenPositions()
	g.TurnCount++
	result := c.applyReveal(g, actor, target, positions, true)
	result.Word = word

	c.recordTurn(ctx, g, &model.TurnRecord{
		RoomCode:          g.RoomCode,
		ActorID:           actor.ID,
		TargetID:          target.ID,
		GuessedWord:       word,
		IsCorrect:         true,
		PositionsRevealed: positions,
		PointsScored:      result.Points,
	})

	// Completing a word ends the turn even on a correct guess
	return &Outcome{
		Result:   result,
		TurnEnds: true,
		GameOver: result.GameOver,
	}, nil
}

// ApplySelectedReveal is the terminal step for a position-choosing selection:
// the original guess resolves as if the chosen position had matched alone.
// Self-expose reveals award no points to anyone.
func (c *Controller) ApplySelectedReveal(ctx context.Context, g *model.Game, sel *model.PendingSelection, position int) (*Outcome, error) {
	if !sel.HasCandidate(position) {
		return nil, model.ErrInvalidPosition
	}

	target := g.GetPlayer(sel.TargetID)
	initiator := g.GetPlayer(sel.InitiatorID)
	if target == nil || initiator == nil {
		return nil, model.ErrPlayerNotFound
	}
	// The candidate list is a snapshot; the board may have moved since for a
	// non-blocking selection. A position revealed in the meantime is no longer
	// a valid choice.
	if !target.IsHiddenAt(position) {
		return nil, model.ErrInvalidPosition
	}

	awardPoints := sel.Kind != model.SelectionSelfExpose
	if awardPoints {
		g.TurnCount++
	}
	result := c.applyReveal(g, initiator, target, []int{position}, awardPoints)
	result.Letter = sel.Letter

	if sel.Kind == model.SelectionSelfExpose {
		g.PendingTurnCard = model.TurnCardNone
		// Forced exposure is not a guess; the current turn is unaffected
		return &Outcome{
			Result:   result,
			GameOver: result.GameOver,
		}, nil
	}

	c.recordTurn(ctx, g, &model.TurnRecord{
		RoomCode:          g.RoomCode,
		ActorID:           initiator.ID,
		TargetID:          target.ID,
		GuessedLetter:     sel.Letter,
		IsCorrect:         true,
		PositionsRevealed: []int{position},
		PointsScored:      result.Points,
	})

	return &Outcome{
		Result:   result,
		TurnEnds: result.WordCompleted,
		GameOver: result.GameOver,
	}, nil
}

// ApplyWordGuessTimeout treats an expired word-guess window as an automatic
// incorrect guess, forfeiting the actor's turn
func (c *Controller) ApplyWordGuessTimeout(ctx context.Context, g *model.Game, sel *model.PendingSelection) (*Outcome, error) {
	actor := g.GetPlayer(sel.InitiatorID)
	target := g.GetPlayer(sel.TargetID)
	if actor == nil || target == nil {
		return nil, model.ErrPlayerNotFound
	}

	g.TurnCount++
	g.UpdatedAt = c.clock.Now()

	c.recordTurn(ctx, g, &model.TurnRecord{
		RoomCode:  g.RoomCode,
		ActorID:   actor.ID,
		TargetID:  target.ID,
		IsCorrect: false,
	})

	return &Outcome{
		Result: &model.GuessResultPayload{
			ActorID:  actor.ID,
			TargetID: target.ID,
		},
		TurnEnds: true,
	}, nil
}

// OpenWordGuessWindow validates that the actor may start a timed full-word
// guess against the target and returns the pending selection to register
func (c *Controller) OpenWordGuessWindow(g *model.Game, actorID, targetID model.PlayerID) (*model.PendingSelection, error) {
	actor, target, err := c.checkGuess(g, actorID, targetID)
	if err != nil {
		return nil, err
	}

	return &model.PendingSelection{
		Kind:        model.SelectionWordGuess,
		RoomCode:    g.RoomCode,
		InitiatorID: actor.ID,
		DeciderID:   actor.ID,
		TargetID:    target.ID,
	}, nil
}

// applyReveal marks positions visible, scores them for the actor, and
// processes word completion, elimination and game over. It mutates the
// aggregate; the caller persists it.
func (c *Controller) applyReveal(g *model.Game, actor, target *model.Player, positions []int, awardPoints bool) *model.GuessResultPayload {
	points := c.scoring.ScoreReveal(positions, target.IsBlankAt)
	target.RevealPositions(positions)

	wordCompleted := target.IsFullyRevealed()
	if wordCompleted {
		points += scoring.WordCompletionBonus
		c.eliminate(g, target)
	}

	if !awardPoints {
		points = 0
	}
	actor.TotalScore += points

	g.UpdatedAt = c.clock.Now()

	result := &model.GuessResultPayload{
		ActorID:           actor.ID,
		TargetID:          target.ID,
		IsCorrect:         true,
		PositionsRevealed: positions,
		Points:            points,
		WordCompleted:     wordCompleted,
	}

	if g.ActivePlayerCount() <= 1 {
		g.Status = model.GameStatusCompleted
		result.GameOver = true
		result.FinalRanking = c.scoring.FinalRanking(g)

		c.logger.Info("game completed",
			slog.String("room_code", string(g.RoomCode)),
			slog.Int("turns", g.TurnCount),
		)
	}

	return result
}

// eliminate marks a fully revealed player out of the game
func (c *Controller) eliminate(g *model.Game, p *model.Player) {
	if p.IsEliminated {
		return
	}
	order := 0
	for _, other := range g.Players {
		if other.EliminationOrder > order {
			order = other.EliminationOrder
		}
	}
	p.IsEliminated = true
	p.EliminationOrder = order + 1

	c.logger.Info("player eliminated",
		slog.String("room_code", string(g.RoomCode)),
		slog.String("player_id", string(p.ID)),
	)
}

// recordTurn appends a write-once audit record for a resolved guess. A
// failure to persist the record is logged but does not fail the resolution.
func (c *Controller) recordTurn(ctx context.Context, g *model.Game, record *model.TurnRecord) {
	record.ID = uuid.NewString()
	record.TurnNumber = g.TurnCount
	record.CreatedAt = c.clock.Now()

	if err := c.storage.SaveTurnRecord(ctx, record); err != nil {
		c.logger.Error("failed to save turn record",
			slog.String("room_code", string(g.RoomCode)),
			slog.String("error", err.Error()),
		)
	}
}
