package turn

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jsherman999/probe-go/internal/dependencies/clock"
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/services/bot"
	"github.com/jsherman999/probe-go/internal/services/game"
	"github.com/jsherman999/probe-go/internal/services/selection"
	"github.com/jsherman999/probe-go/internal/storage"
)

const (
	// BotTurnSeconds is the shortened timer for automated actors
	BotTurnSeconds = 5

	// MaxBotIterations is a safety limit for cascading bot turns
	MaxBotIterations = 100
)

// Publisher broadcasts room-addressed events to the transport layer
type Publisher interface {
	Publish(event model.Event)
}

// Orchestrator owns the per-room turn state machine: it serializes every
// state-mutating command behind a per-room lock, drives the turn timer,
// sequences pending selections, and invokes the bot adapter whenever the
// acting or deciding party is automated. Rooms progress fully independently.
type Orchestrator struct {
	storage    storage.Storage
	engine     *game.Controller
	selections *selection.Coordinator
	bots       *bot.Service
	clock      clock.Clock
	publisher  Publisher
	logger     *slog.Logger

	mu         sync.Mutex
	roomLocks  map[model.RoomCode]*sync.Mutex
	turnTimers map[model.RoomCode]clock.Timer
	turnEpochs map[model.RoomCode]uint64
	deadlines  map[model.RoomCode]time.Time
}

// NewOrchestrator creates a new turn Orchestrator
func NewOrchestrator(
	store storage.Storage,
	engine *game.Controller,
	selections *selection.Coordinator,
	bots *bot.Service,
	clk clock.Clock,
	publisher Publisher,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		storage:    store,
		engine:     engine,
		selections: selections,
		bots:       bots,
		clock:      clk,
		publisher:  publisher,
		logger:     logger.With(slog.String("component", "turn-orchestrator")),
		roomLocks:  make(map[model.RoomCode]*sync.Mutex),
		turnTimers: make(map[model.RoomCode]clock.Timer),
		turnEpochs: make(map[model.RoomCode]uint64),
		deadlines:  make(map[model.RoomCode]time.Time),
	}
}

// roomLock returns the mutex serializing a room's state mutations
func (o *Orchestrator) roomLock(code model.RoomCode) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.roomLocks[code]
	if !ok {
		lock = &sync.Mutex{}
		o.roomLocks[code] = lock
	}
	return lock
}

// withRoom runs fn against the room's aggregate under its lock, persisting
// the aggregate afterwards. A rejected fn leaves state unchanged.
func (o *Orchestrator) withRoom(ctx context.Context, code model.RoomCode, fn func(g *model.Game) error) error {
	lock := o.roomLock(code)
	lock.Lock()
	defer lock.Unlock()

	g, err := o.storage.GetGame(ctx, code)
	if err != nil {
		return err
	}
	if err := fn(g); err != nil {
		return err
	}
	return o.storage.SaveGame(ctx, g)
}

// TurnDeadline returns the armed turn deadline for a room in epoch millis,
// or zero when no timer is armed
func (o *Orchestrator) TurnDeadline(code model.RoomCode) int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	deadline, ok := o.deadlines[code]
	if !ok {
		return 0
	}
	return model.EpochMillis(deadline)
}

// BeginGame starts the turn clock for a freshly activated game, letting a
// bot first player act immediately
func (o *Orchestrator) BeginGame(ctx context.Context, code model.RoomCode) error {
	return o.withRoom(ctx, code, func(g *model.Game) error {
		if g.Status != model.GameStatusActive {
			return model.ErrGameNotActive
		}

		players := make([]model.PlayerID, 0, len(g.Players))
		for _, p := range g.PlayersInTurnOrder() {
			players = append(players, p.ID)
		}
		o.publish(g.RoomCode, model.EventGameStarted, model.GameStartedPayload{
			Players:       players,
			FirstPlayerID: g.CurrentTurnPlayerID,
			Deadline:      model.EpochMillis(o.clock.Now().Add(o.turnDuration(g, g.CurrentTurnPlayerID))),
		})

		o.resumeTurn(ctx, g)
		return nil
	})
}

// GuessLetter resolves a letter guess for the current actor
func (o *Orchestrator) GuessLetter(ctx context.Context, code model.RoomCode, actorID, targetID model.PlayerID, letter string) (*game.Outcome, error) {
	var outcome *game.Outcome
	err := o.withRoom(ctx, code, func(g *model.Game) error {
		if o.selections.HasBlocking(code) {
			return model.ErrSelectionPending
		}
		var err error
		outcome, err = o.engine.ResolveLetterGuess(ctx, g, actorID, targetID, letter)
		if err != nil {
			return err
		}
		o.sequence(ctx, g, outcome)
		return nil
	})
	return outcome, err
}

// GuessWord resolves a direct full-word guess for the current actor
func (o *Orchestrator) GuessWord(ctx context.Context, code model.RoomCode, actorID, targetID model.PlayerID, word string) (*game.Outcome, error) {
	var outcome *game.Outcome
	err := o.withRoom(ctx, code, func(g *model.Game) error {
		if o.selections.HasBlocking(code) {
			return model.ErrSelectionPending
		}
		var err error
		outcome, err = o.engine.ResolveWordGuess(ctx, g, actorID, targetID, word)
		if err != nil {
			return err
		}
		o.sequence(ctx, g, outcome)
		return nil
	})
	return outcome, err
}

// SubmitSelection resolves a pending position selection by its decider. A
// submission racing an already-fired timeout is silently a no-op.
func (o *Orchestrator) SubmitSelection(ctx context.Context, code model.RoomCode, deciderID model.PlayerID, kind model.SelectionKind, position int) (*game.Outcome, error) {
	var outcome *game.Outcome
	err := o.withRoom(ctx, code, func(g *model.Game) error {
		key := model.SelectionKey{RoomCode: code, Decider: deciderID, Kind: kind}
		sel, ok := o.selections.Get(key)
		if !ok {
			// Late or duplicate submission; the race already resolved
			return nil
		}
		if !sel.HasCandidate(position) {
			return model.ErrInvalidPosition
		}
		// Candidates were snapshotted when the selection arose; for a
		// non-blocking selection the board may have moved since. Reject an
		// already-revealed choice before claiming the entry so the decider
		// can pick again.
		if t := g.GetPlayer(sel.TargetID); t == nil || !t.IsHiddenAt(position) {
			return model.ErrInvalidPosition
		}
		if _, ok := o.selections.Take(key); !ok {
			return nil
		}

		var err error
		outcome, err = o.resolveSelection(ctx, g, sel, position, false)
		if err != nil {
			return err
		}

		if sel.Kind == model.SelectionSelfExpose {
			o.afterSelfExpose(ctx, g, outcome)
			return nil
		}
		o.sequence(ctx, g, outcome)
		return nil
	})
	return outcome, err
}

// OpenWordGuessWindow starts the actor's timed full-word guess against a
// target. The turn is suspended until the window resolves.
func (o *Orchestrator) OpenWordGuessWindow(ctx context.Context, code model.RoomCode, actorID, targetID model.PlayerID) (*model.PendingSelection, error) {
	var sel *model.PendingSelection
	err := o.withRoom(ctx, code, func(g *model.Game) error {
		if o.selections.HasBlocking(code) {
			return model.ErrSelectionPending
		}
		var err error
		sel, err = o.engine.OpenWordGuessWindow(g, actorID, targetID)
		if err != nil {
			return err
		}
		o.registerHumanSelection(g, sel, true)
		return nil
	})
	return sel, err
}

// SubmitWordGuess resolves the word guess of an open window. A rejected
// word (malformed or already tried) leaves the window open.
func (o *Orchestrator) SubmitWordGuess(ctx context.Context, code model.RoomCode, actorID model.PlayerID, word string) (*game.Outcome, error) {
	var outcome *game.Outcome
	err := o.withRoom(ctx, code, func(g *model.Game) error {
		key := model.SelectionKey{RoomCode: code, Decider: actorID, Kind: model.SelectionWordGuess}
		sel, ok := o.selections.Get(key)
		if !ok {
			return model.ErrNoPendingSelection
		}

		var err error
		outcome, err = o.engine.ResolveWordGuess(ctx, g, actorID, sel.TargetID, word)
		if err != nil {
			return err
		}

		o.selections.Take(key)
		o.sequence(ctx, g, outcome)
		return nil
	})
	return outcome, err
}

// CancelWordGuessWindow closes an open word-guess window without a guess,
// resuming the actor's turn. Closing an absent window is a no-op.
func (o *Orchestrator) CancelWordGuessWindow(ctx context.Context, code model.RoomCode, actorID model.PlayerID) error {
	return o.withRoom(ctx, code, func(g *model.Game) error {
		key := model.SelectionKey{RoomCode: code, Decider: actorID, Kind: model.SelectionWordGuess}
		if _, ok := o.selections.Take(key); !ok {
			return nil
		}
		o.resumeTurn(ctx, g)
		return nil
	})
}

// TeardownRoom cancels every timer associated with a room so no dangling
// callback can mutate a torn-down or reassigned room
func (o *Orchestrator) TeardownRoom(code model.RoomCode) {
	o.cancelTurnTimer(code)
	removed := o.selections.CancelRoom(code)

	o.mu.Lock()
	delete(o.roomLocks, code)
	o.mu.Unlock()

	o.logger.Info("room torn down",
		slog.String("room_code", string(code)),
		slog.Int("cancelled_selections", removed),
	)
}

// sequence drives the turn flow after a resolved guess: publish, register
// any required selection, then advance or resume the turn
func (o *Orchestrator) sequence(ctx context.Context, g *model.Game, outcome *game.Outcome) {
	turnEnds, suspended := o.processOutcome(ctx, g, outcome)
	if g.Status != model.GameStatusActive || suspended {
		return
	}
	if turnEnds {
		o.advancePlayers(g)
	}
	o.resumeTurn(ctx, g)
}

// processOutcome publishes an outcome's events and registers its pending
// selection. Bot deciders resolve synchronously through the same terminal
// path, with no human timeout armed. Returns whether the turn should end
// and whether the flow is suspended awaiting a human decider.
func (o *Orchestrator) processOutcome(ctx context.Context, g *model.Game, outcome *game.Outcome) (turnEnds, suspended bool) {
	if outcome.CardDrawn != model.TurnCardNone {
		o.publish(g.RoomCode, model.EventTurnCardDrawn, model.TurnCardDrawnPayload{
			PlayerID: g.CurrentTurnPlayerID,
			Card:     outcome.CardDrawn,
		})
	}
	if outcome.Result != nil {
		o.publish(g.RoomCode, model.EventGuessResult, *outcome.Result)
	}
	if outcome.GameOver {
		o.finishGame(g, outcome.Result)
		return false, false
	}

	turnEnds = outcome.TurnEnds

	sel := outcome.Selection
	if sel == nil {
		return turnEnds, false
	}

	blocking := sel.Kind != model.SelectionSelfExpose
	decider := g.GetPlayer(sel.DeciderID)

	if decider != nil && decider.IsBot {
		// The bot decides in place of waiting for a human submit
		o.selections.Register(sel, nil)
		position := o.bots.DecidePosition(ctx, sel, decider)
		o.selections.TakeExact(sel)

		subOutcome, err := o.resolveSelection(ctx, g, sel, position, false)
		if err != nil {
			o.logger.Error("bot selection failed",
				slog.String("room_code", string(g.RoomCode)),
				slog.String("error", err.Error()),
			)
			return turnEnds, false
		}
		subEnds, _ := o.processOutcome(ctx, g, subOutcome)
		if blocking {
			turnEnds = turnEnds || subEnds
		}
		return turnEnds, false
	}

	o.registerHumanSelection(g, sel, blocking)
	if blocking {
		return false, true
	}
	return turnEnds, false
}

// registerHumanSelection arms the selection's timeout and announces it. A
// blocking selection suspends the turn, so the turn timer is cancelled
// first; a stale fire mid-selection could otherwise double-advance.
func (o *Orchestrator) registerHumanSelection(g *model.Game, sel *model.PendingSelection, blocking bool) {
	if blocking {
		o.cancelTurnTimer(g.RoomCode)
	}
	o.selections.Register(sel, func(s *model.PendingSelection) {
		o.handleSelectionTimeout(s)
	})
	o.publish(g.RoomCode, model.EventSelectionRequired, model.SelectionRequiredPayload{
		Kind:       sel.Kind,
		DeciderID:  sel.DeciderID,
		TargetID:   sel.TargetID,
		Candidates: sel.Candidates,
		Deadline:   model.EpochMillis(sel.Deadline),
	})
}

// resolveSelection applies the terminal step for a claimed selection and
// publishes its resolution
func (o *Orchestrator) resolveSelection(ctx context.Context, g *model.Game, sel *model.PendingSelection, position int, auto bool) (*game.Outcome, error) {
	var outcome *game.Outcome
	var err error
	if sel.Kind == model.SelectionWordGuess {
		outcome, err = o.engine.ApplyWordGuessTimeout(ctx, g, sel)
	} else {
		outcome, err = o.engine.ApplySelectedReveal(ctx, g, sel, position)
	}
	if err != nil {
		return nil, err
	}

	if sel.Kind != model.SelectionWordGuess {
		o.publish(g.RoomCode, model.EventSelectionResolved, model.SelectionResolvedPayload{
			Kind:         sel.Kind,
			DeciderID:    sel.DeciderID,
			Position:     position,
			AutoSelected: auto,
		})
	}
	return outcome, nil
}

// afterSelfExpose handles turn bookkeeping after a forced self-reveal: the
// turn is normally unaffected, but an exposure that eliminates the current
// turn holder must hand the turn on
func (o *Orchestrator) afterSelfExpose(ctx context.Context, g *model.Game, outcome *game.Outcome) {
	if g.Status != model.GameStatusActive {
		return
	}
	current := g.GetPlayer(g.CurrentTurnPlayerID)
	if current != nil && current.IsEliminated {
		o.advancePlayers(g)
		o.resumeTurn(ctx, g)
	}
}

// advancePlayers hands the turn to the next active player, tracking round
// wrap-around
func (o *Orchestrator) advancePlayers(g *model.Game) {
	previous := g.CurrentTurnPlayerID
	next := g.NextActivePlayer(previous)
	if next == "" {
		return
	}

	prevPlayer := g.GetPlayer(previous)
	nextPlayer := g.GetPlayer(next)
	if prevPlayer != nil && nextPlayer != nil && nextPlayer.TurnOrder <= prevPlayer.TurnOrder {
		g.RoundNumber++
	}

	g.CurrentTurnPlayerID = next
	g.CurrentTurnStartedAt = o.clock.Now()

	o.publish(g.RoomCode, model.EventTurnChanged, model.TurnChangedPayload{
		PreviousPlayerID: previous,
		CurrentPlayerID:  next,
		RoundNumber:      g.RoundNumber,
		Deadline:         model.EpochMillis(o.clock.Now().Add(o.turnDuration(g, next))),
	})
}

// resumeTurn continues the room's flow for the current actor: bots act
// immediately in a bounded cascade; a human turn arms the timer and waits
// for an external event
func (o *Orchestrator) resumeTurn(ctx context.Context, g *model.Game) {
	for i := 0; i < MaxBotIterations; i++ {
		if g.Status != model.GameStatusActive {
			return
		}
		if o.selections.HasBlocking(g.RoomCode) {
			return
		}

		current := g.GetPlayer(g.CurrentTurnPlayerID)
		if current == nil {
			return
		}
		if !current.IsBot {
			o.armTurnTimer(g)
			return
		}

		guess := o.bots.DecideGuess(ctx, g, current)
		outcome, err := o.engine.ResolveLetterGuess(ctx, g, current.ID, guess.TargetID, guess.Letter)
		if err != nil {
			// A rejected bot action forfeits the turn rather than stalling
			o.logger.Error("bot guess rejected",
				slog.String("room_code", string(g.RoomCode)),
				slog.String("bot_id", string(current.ID)),
				slog.String("error", err.Error()),
			)
			o.advancePlayers(g)
			continue
		}

		turnEnds, suspended := o.processOutcome(ctx, g, outcome)
		if g.Status != model.GameStatusActive || suspended {
			return
		}
		if turnEnds {
			o.advancePlayers(g)
		}
	}

	// Cascade limit hit; fall back to the timer
	o.armTurnTimer(g)
}

// turnDuration picks the timer for an actor: a fixed short timer for bots,
// the room's configured (clamped) timer for humans
func (o *Orchestrator) turnDuration(g *model.Game, playerID model.PlayerID) time.Duration {
	if p := g.GetPlayer(playerID); p != nil && p.IsBot {
		return BotTurnSeconds * time.Second
	}
	return time.Duration(g.EffectiveTurnSeconds()) * time.Second
}

// armTurnTimer schedules the forfeiture timeout for the current turn,
// replacing any previously armed timer for the room. Every arm takes a
// fresh epoch so a replaced timer that already fired and is waiting on
// the room lock can never forfeit the new turn.
func (o *Orchestrator) armTurnTimer(g *model.Game) {
	code := g.RoomCode
	playerID := g.CurrentTurnPlayerID
	duration := o.turnDuration(g, playerID)

	o.mu.Lock()
	if prior, ok := o.turnTimers[code]; ok {
		prior.Stop()
	}
	o.turnEpochs[code]++
	epoch := o.turnEpochs[code]
	o.deadlines[code] = o.clock.Now().Add(duration)
	o.turnTimers[code] = o.clock.AfterFunc(duration, func() {
		o.handleTurnTimeout(code, playerID, epoch)
	})
	o.mu.Unlock()
}

// cancelTurnTimer stops the room's turn timer if armed, invalidating any
// fire already in flight
func (o *Orchestrator) cancelTurnTimer(code model.RoomCode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if timer, ok := o.turnTimers[code]; ok {
		timer.Stop()
		delete(o.turnTimers, code)
	}
	o.turnEpochs[code]++
	delete(o.deadlines, code)
}

// turnEpoch returns the room's current timer epoch
func (o *Orchestrator) turnEpoch(code model.RoomCode) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.turnEpochs[code]
}

// handleTurnTimeout fires when the current actor ran out of time: the turn
// is forfeited and advanced. Stale fires for a turn that already resolved
// are no-ops; the epoch is checked under the room lock so a fire that was
// superseded while waiting for it cannot act.
func (o *Orchestrator) handleTurnTimeout(code model.RoomCode, playerID model.PlayerID, epoch uint64) {
	ctx := context.Background()
	err := o.withRoom(ctx, code, func(g *model.Game) error {
		if o.turnEpoch(code) != epoch {
			return nil // The timer was re-armed or cancelled since this fire
		}
		if g.Status != model.GameStatusActive {
			return nil
		}
		if g.CurrentTurnPlayerID != playerID {
			return nil
		}
		if o.selections.HasBlocking(code) {
			return nil
		}

		o.publish(code, model.EventTurnTimeout, model.TurnTimeoutPayload{PlayerID: playerID})
		o.logger.Info("turn timed out",
			slog.String("room_code", string(code)),
			slog.String("player_id", string(playerID)),
		)

		o.advancePlayers(g)
		o.resumeTurn(ctx, g)
		return nil
	})
	if err != nil {
		o.logger.Error("turn timeout handling failed",
			slog.String("room_code", string(code)),
			slog.String("error", err.Error()),
		)
	}
}

// handleSelectionTimeout fires when a decider missed their deadline: the
// deterministic fallback resolves the selection. Whichever of a racing
// submit and timeout claims the entry mutates state; the loser no-ops here.
func (o *Orchestrator) handleSelectionTimeout(sel *model.PendingSelection) {
	ctx := context.Background()
	err := o.withRoom(ctx, sel.RoomCode, func(g *model.Game) error {
		if !o.selections.TakeExact(sel) {
			return nil
		}

		position := sel.RightmostCandidate()
		if sel.Kind != model.SelectionWordGuess {
			target := g.GetPlayer(sel.TargetID)
			if target == nil {
				return nil
			}
			pos, ok := sel.RightmostCandidateWhere(target.IsHiddenAt)
			if !ok {
				// Every candidate was revealed while the choice was pending;
				// nothing is left for the fallback to expose
				if sel.Kind == model.SelectionSelfExpose {
					g.PendingTurnCard = model.TurnCardNone
				} else {
					o.resumeTurn(ctx, g)
				}
				return nil
			}
			position = pos
		}

		outcome, err := o.resolveSelection(ctx, g, sel, position, true)
		if err != nil {
			return err
		}

		if sel.Kind == model.SelectionSelfExpose {
			o.afterSelfExpose(ctx, g, outcome)
			return nil
		}
		o.sequence(ctx, g, outcome)
		return nil
	})
	if err != nil {
		o.logger.Error("selection timeout handling failed",
			slog.String("room_code", string(sel.RoomCode)),
			slog.String("error", err.Error()),
		)
	}
}

// finishGame publishes the final ranking and releases the room's timers.
// The completed aggregate remains in storage for history.
func (o *Orchestrator) finishGame(g *model.Game, result *model.GuessResultPayload) {
	var ranking []model.PlayerRank
	if result != nil {
		ranking = result.FinalRanking
	}
	var winner model.PlayerID
	if len(ranking) > 0 {
		winner = ranking[0].PlayerID
	}

	o.publish(g.RoomCode, model.EventGameOver, model.GameOverPayload{
		WinnerID: winner,
		Ranking:  ranking,
	})

	o.cancelTurnTimer(g.RoomCode)
	o.selections.CancelRoom(g.RoomCode)
}

// publish emits a room event through the transport publisher
func (o *Orchestrator) publish(code model.RoomCode, eventType model.EventType, payload any) {
	if o.publisher == nil {
		return
	}
	o.publisher.Publish(model.Event{
		Type:      eventType,
		RoomCode:  code,
		Timestamp: model.EpochMillis(o.clock.Now()),
		Payload:   payload,
	})
}
