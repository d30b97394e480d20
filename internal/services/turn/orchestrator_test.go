package turn

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jsherman999/probe-go/internal/dependencies/mocks"
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/services/bot"
	"github.com/jsherman999/probe-go/internal/services/dictionary"
	"github.com/jsherman999/probe-go/internal/services/game"
	"github.com/jsherman999/probe-go/internal/services/scoring"
	"github.com/jsherman999/probe-go/internal/services/selection"
	"github.com/jsherman999/probe-go/internal/storage/memory"
	"github.com/jsherman999/probe-go/internal/testutil"
)

// capturePublisher records published events for assertions
type capturePublisher struct {
	mu     sync.Mutex
	events []model.Event
}

func (p *capturePublisher) Publish(event model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) ofType(t model.EventType) []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Event
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type OrchestratorSuite struct {
	suite.Suite
	storage      *memory.Storage
	clock        *mocks.MockClock
	random       *mocks.MockRandom
	engine       *game.Controller
	selections   *selection.Coordinator
	botService   *bot.Service
	publisher    *capturePublisher
	orchestrator *Orchestrator
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	scoringService := scoring.New()
	dictService := dictionary.New(s.storage, s.random)
	s.engine = game.NewController(s.storage, scoringService, s.clock, s.random, logger)
	s.selections = selection.NewCoordinator(s.clock, logger)
	s.botService = bot.NewService(map[string]bot.Strategy{
		model.BotStrategyGreedy: bot.NewGreedyStrategy(scoringService),
		model.BotStrategyRandom: bot.NewRandomStrategy(s.random),
	}, dictService, s.random, logger)
	s.publisher = &capturePublisher{}
	s.orchestrator = NewOrchestrator(
		s.storage, s.engine, s.selections, s.botService, s.clock, s.publisher, logger,
	)
	s.ctx = context.Background()
}

type seatedPlayer struct {
	id    model.PlayerID
	word  string
	isBot bool
}

// activeGame saves an active game with the given players seated in turn
// order; the first player holds the turn
func (s *OrchestratorSuite) activeGame(players ...seatedPlayer) *model.Game {
	g := &model.Game{
		RoomCode:    "ROOM01",
		Status:      model.GameStatusActive,
		HostID:      players[0].id,
		RoundNumber: 1,
	}
	for i, sp := range players {
		p := &model.Player{
			ID:          sp.id,
			DisplayName: string(sp.id),
			IsBot:       sp.isBot,
			SecretWord:  sp.word,
			PaddedWord:  sp.word,
			Revealed:    make([]bool, len(sp.word)),
			TurnOrder:   i,
			JoinedAt:    s.clock.Now(),
		}
		if sp.isBot {
			p.BotStrategy = model.BotStrategyGreedy
		}
		g.Players = append(g.Players, p)
	}
	g.CurrentTurnPlayerID = players[0].id
	g.CurrentTurnStartedAt = s.clock.Now()
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))
	return g
}

func (s *OrchestratorSuite) storedGame() *model.Game {
	g, err := s.storage.GetGame(s.ctx, "ROOM01")
	s.Require().NoError(err)
	return g
}

func (s *OrchestratorSuite) TestBeginGamePublishesStartAndArmsTimer() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	start := s.clock.Now()

	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	started := s.publisher.ofType(model.EventGameStarted)
	s.Require().Len(started, 1)
	payload := started[0].Payload.(model.GameStartedPayload)
	s.Equal([]model.PlayerID{"alice", "bob"}, payload.Players)
	s.Equal(model.PlayerID("alice"), payload.FirstPlayerID)
	s.Equal(model.EpochMillis(start.Add(60*time.Second)), payload.Deadline)

	s.Equal(model.EpochMillis(start.Add(60*time.Second)), s.orchestrator.TurnDeadline("ROOM01"))
}

func (s *OrchestratorSuite) TestBeginGameRequiresActiveGame() {
	g := s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	g.Status = model.GameStatusWaiting
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	s.Require().ErrorIs(s.orchestrator.BeginGame(s.ctx, "ROOM01"), model.ErrGameNotActive)
}

func (s *OrchestratorSuite) TestCorrectGuessKeepsTurn() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	outcome, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "W")
	s.Require().NoError(err)
	s.True(outcome.Result.IsCorrect)
	s.False(outcome.TurnEnds)

	g := s.storedGame()
	s.Equal(model.PlayerID("alice"), g.CurrentTurnPlayerID)
	s.Equal(5, g.GetPlayer("alice").TotalScore)
	s.True(g.GetPlayer("bob").Revealed[0])

	s.Empty(s.publisher.ofType(model.EventTurnChanged))
	s.Require().Len(s.publisher.ofType(model.EventGuessResult), 1)
}

func (s *OrchestratorSuite) TestMissAdvancesTurn() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	outcome, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "Z")
	s.Require().NoError(err)
	s.False(outcome.Result.IsCorrect)

	g := s.storedGame()
	s.Equal(model.PlayerID("bob"), g.CurrentTurnPlayerID)
	s.Equal([]string{"Z"}, g.GetPlayer("bob").MissedLetters)

	changed := s.publisher.ofType(model.EventTurnChanged)
	s.Require().Len(changed, 1)
	payload := changed[0].Payload.(model.TurnChangedPayload)
	s.Equal(model.PlayerID("alice"), payload.PreviousPlayerID)
	s.Equal(model.PlayerID("bob"), payload.CurrentPlayerID)
	s.Equal(1, payload.RoundNumber)
}

func (s *OrchestratorSuite) TestRoundWrapsWhenTurnOrderRestarts() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "Z")
	s.Require().NoError(err)
	_, err = s.orchestrator.GuessLetter(s.ctx, "ROOM01", "bob", "alice", "Z")
	s.Require().NoError(err)

	g := s.storedGame()
	s.Equal(model.PlayerID("alice"), g.CurrentTurnPlayerID)
	s.Equal(2, g.RoundNumber)
}

func (s *OrchestratorSuite) TestRejectedGuessChangesNothing() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "bob", "alice", "C")
	s.Require().ErrorIs(err, model.ErrNotPlayerTurn)

	g := s.storedGame()
	s.Equal(model.PlayerID("alice"), g.CurrentTurnPlayerID)
	s.Empty(s.publisher.ofType(model.EventGuessResult))
}

func (s *OrchestratorSuite) TestTurnTimeoutForfeitsTurn() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	s.clock.Advance(60 * time.Second)

	timeouts := s.publisher.ofType(model.EventTurnTimeout)
	s.Require().Len(timeouts, 1)
	s.Equal(model.PlayerID("alice"), timeouts[0].Payload.(model.TurnTimeoutPayload).PlayerID)

	g := s.storedGame()
	s.Equal(model.PlayerID("bob"), g.CurrentTurnPlayerID)

	// The next turn has its own deadline
	s.Equal(model.EpochMillis(s.clock.Now().Add(60*time.Second)), s.orchestrator.TurnDeadline("ROOM01"))
}

func (s *OrchestratorSuite) TestResolvedGuessDisarmsStaleTimer() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	// Alice resolves her turn well before her deadline
	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "Z")
	s.Require().NoError(err)

	// Only Bob's timer may fire
	s.clock.Advance(60 * time.Second)
	timeouts := s.publisher.ofType(model.EventTurnTimeout)
	s.Require().Len(timeouts, 1)
	s.Equal(model.PlayerID("bob"), timeouts[0].Payload.(model.TurnTimeoutPayload).PlayerID)
}

func (s *OrchestratorSuite) TestStaleTimeoutFireCannotForfeitResolvedTurn() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))
	staleEpoch := s.orchestrator.turnEpoch("ROOM01")

	// A correct guess keeps Alice the actor and re-arms her timer
	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "W")
	s.Require().NoError(err)

	// Under a real clock the replaced timer may have fired already and be
	// waiting on the room lock; delivering that fire must change nothing
	s.orchestrator.handleTurnTimeout("ROOM01", "alice", staleEpoch)

	s.Empty(s.publisher.ofType(model.EventTurnTimeout))
	s.Equal(model.PlayerID("alice"), s.storedGame().CurrentTurnPlayerID)

	// The live timer still forfeits the turn at its own deadline
	s.clock.Advance(60 * time.Second)
	timeouts := s.publisher.ofType(model.EventTurnTimeout)
	s.Require().Len(timeouts, 1)
	s.Equal(model.PlayerID("alice"), timeouts[0].Payload.(model.TurnTimeoutPayload).PlayerID)
	s.Equal(model.PlayerID("bob"), s.storedGame().CurrentTurnPlayerID)
}

func (s *OrchestratorSuite) TestDuplicateSelectionSuspendsTurn() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "MOOD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	outcome, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "O")
	s.Require().NoError(err)
	s.Require().NotNil(outcome.Selection)

	required := s.publisher.ofType(model.EventSelectionRequired)
	s.Require().Len(required, 1)
	payload := required[0].Payload.(model.SelectionRequiredPayload)
	s.Equal(model.SelectionDuplicateLetter, payload.Kind)
	s.Equal(model.PlayerID("bob"), payload.DeciderID)
	s.Equal([]int{1, 2}, payload.Candidates)
	s.Equal(model.EpochMillis(s.clock.Now().Add(selection.DefaultTimeout)), payload.Deadline)

	// The turn timer is suspended and other guesses are rejected
	s.Equal(int64(0), s.orchestrator.TurnDeadline("ROOM01"))
	_, err = s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "M")
	s.Require().ErrorIs(err, model.ErrSelectionPending)
}

func (s *OrchestratorSuite) TestSubmitSelectionResolvesAndResumesTurn() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "MOOD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))
	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "O")
	s.Require().NoError(err)

	outcome, err := s.orchestrator.SubmitSelection(s.ctx, "ROOM01", "bob", model.SelectionDuplicateLetter, 1)
	s.Require().NoError(err)
	s.Require().NotNil(outcome)
	s.Equal(10, outcome.Result.Points)

	resolved := s.publisher.ofType(model.EventSelectionResolved)
	s.Require().Len(resolved, 1)
	payload := resolved[0].Payload.(model.SelectionResolvedPayload)
	s.Equal(1, payload.Position)
	s.False(payload.AutoSelected)

	g := s.storedGame()
	s.Equal(10, g.GetPlayer("alice").TotalScore)
	s.True(g.GetPlayer("bob").Revealed[1])
	// A correct guess keeps the turn, with a fresh deadline
	s.Equal(model.PlayerID("alice"), g.CurrentTurnPlayerID)
	s.NotEqual(int64(0), s.orchestrator.TurnDeadline("ROOM01"))
}

func (s *OrchestratorSuite) TestSubmitSelectionRejectsNonCandidate() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "MOOD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))
	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "O")
	s.Require().NoError(err)

	_, err = s.orchestrator.SubmitSelection(s.ctx, "ROOM01", "bob", model.SelectionDuplicateLetter, 0)
	s.Require().ErrorIs(err, model.ErrInvalidPosition)

	// The selection survives a rejected choice
	s.True(s.selections.HasBlocking("ROOM01"))
}

func (s *OrchestratorSuite) TestSelectionTimeoutAutoSelectsRightmost() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "MOOD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))
	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "O")
	s.Require().NoError(err)

	s.clock.Advance(selection.DefaultTimeout)

	resolved := s.publisher.ofType(model.EventSelectionResolved)
	s.Require().Len(resolved, 1)
	payload := resolved[0].Payload.(model.SelectionResolvedPayload)
	s.Equal(2, payload.Position)
	s.True(payload.AutoSelected)

	g := s.storedGame()
	s.True(g.GetPlayer("bob").Revealed[2])
	s.Equal(15, g.GetPlayer("alice").TotalScore)
	s.Equal(model.PlayerID("alice"), g.CurrentTurnPlayerID)

	// A submission racing the fired timeout is a silent no-op
	outcome, err := s.orchestrator.SubmitSelection(s.ctx, "ROOM01", "bob", model.SelectionDuplicateLetter, 1)
	s.Require().NoError(err)
	s.Nil(outcome)
	s.False(g.GetPlayer("bob").Revealed[1])
}

func (s *OrchestratorSuite) TestBotDeciderResolvesSelectionInline() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bot-1", word: "MOOD", isBot: true},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bot-1", "O")
	s.Require().NoError(err)

	// The greedy bot concedes the cheaper position without any human wait
	resolved := s.publisher.ofType(model.EventSelectionResolved)
	s.Require().Len(resolved, 1)
	s.Equal(1, resolved[0].Payload.(model.SelectionResolvedPayload).Position)
	s.Empty(s.publisher.ofType(model.EventSelectionRequired))

	g := s.storedGame()
	s.True(g.GetPlayer("bot-1").Revealed[1])
	s.Equal(10, g.GetPlayer("alice").TotalScore)
	s.Equal(model.PlayerID("alice"), g.CurrentTurnPlayerID)
	s.Equal(0, s.selections.PendingCount())
}

func (s *OrchestratorSuite) TestWordGuessWindowWrongGuessForfeitsTurn() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	sel, err := s.orchestrator.OpenWordGuessWindow(s.ctx, "ROOM01", "alice", "bob")
	s.Require().NoError(err)
	s.Equal(model.SelectionWordGuess, sel.Kind)

	// The window suspends everything else
	_, err = s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "W")
	s.Require().ErrorIs(err, model.ErrSelectionPending)

	outcome, err := s.orchestrator.SubmitWordGuess(s.ctx, "ROOM01", "alice", "MOOD")
	s.Require().NoError(err)
	s.False(outcome.Result.IsCorrect)

	g := s.storedGame()
	s.Equal(model.PlayerID("bob"), g.CurrentTurnPlayerID)
	s.Equal([]string{"MOOD"}, g.GetPlayer("bob").GuessedWords)
	s.Equal(0, s.selections.PendingCount())
}

func (s *OrchestratorSuite) TestWordGuessWindowRejectedWordKeepsWindowOpen() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))
	_, err := s.orchestrator.OpenWordGuessWindow(s.ctx, "ROOM01", "alice", "bob")
	s.Require().NoError(err)

	_, err = s.orchestrator.SubmitWordGuess(s.ctx, "ROOM01", "alice", "ABC")
	s.Require().ErrorIs(err, model.ErrInvalidWord)
	s.True(s.selections.HasBlocking("ROOM01"))

	// Cancelling resumes the actor's turn
	s.Require().NoError(s.orchestrator.CancelWordGuessWindow(s.ctx, "ROOM01", "alice"))
	s.False(s.selections.HasBlocking("ROOM01"))
	s.Equal(model.PlayerID("alice"), s.storedGame().CurrentTurnPlayerID)
	s.NotEqual(int64(0), s.orchestrator.TurnDeadline("ROOM01"))
}

func (s *OrchestratorSuite) TestSubmitWordGuessWithoutWindow() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	_, err := s.orchestrator.SubmitWordGuess(s.ctx, "ROOM01", "alice", "WORD")
	s.Require().ErrorIs(err, model.ErrNoPendingSelection)
}

func (s *OrchestratorSuite) TestWordGuessWindowTimeoutCountsAsIncorrect() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))
	_, err := s.orchestrator.OpenWordGuessWindow(s.ctx, "ROOM01", "alice", "bob")
	s.Require().NoError(err)

	s.clock.Advance(selection.DefaultTimeout)

	results := s.publisher.ofType(model.EventGuessResult)
	s.Require().Len(results, 1)
	s.False(results[0].Payload.(model.GuessResultPayload).IsCorrect)

	g := s.storedGame()
	s.Equal(model.PlayerID("bob"), g.CurrentTurnPlayerID)
	s.Equal(0, s.selections.PendingCount())
}

func (s *OrchestratorSuite) TestSelfExposeRunsAlongsideNextTurn() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	// The miss draws a card forcing Alice to expose one of her own positions
	s.random.QueueIntn(3)
	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "Z")
	s.Require().NoError(err)

	s.Require().Len(s.publisher.ofType(model.EventTurnCardDrawn), 1)
	required := s.publisher.ofType(model.EventSelectionRequired)
	s.Require().Len(required, 1)
	s.Equal(model.SelectionSelfExpose, required[0].Payload.(model.SelectionRequiredPayload).Kind)

	// The turn still advanced; the exposure does not block Bob
	g := s.storedGame()
	s.Equal(model.PlayerID("bob"), g.CurrentTurnPlayerID)
	s.Require().Len(s.publisher.ofType(model.EventTurnChanged), 1)
	s.False(s.selections.HasBlocking("ROOM01"))

	// Alice picks her exposed position; no points change hands and the
	// turn holder is untouched
	outcome, err := s.orchestrator.SubmitSelection(s.ctx, "ROOM01", "alice", model.SelectionSelfExpose, 3)
	s.Require().NoError(err)
	s.Equal(0, outcome.Result.Points)

	g = s.storedGame()
	s.True(g.GetPlayer("alice").Revealed[3])
	s.Equal(model.PlayerID("bob"), g.CurrentTurnPlayerID)
	s.Equal(model.TurnCardNone, g.PendingTurnCard)
}

func (s *OrchestratorSuite) TestSelfExposeTimeoutRevealsRightmost() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	s.random.QueueIntn(3)
	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "Z")
	s.Require().NoError(err)

	s.clock.Advance(selection.DefaultTimeout)

	resolved := s.publisher.ofType(model.EventSelectionResolved)
	s.Require().Len(resolved, 1)
	payload := resolved[0].Payload.(model.SelectionResolvedPayload)
	s.Equal(model.SelectionSelfExpose, payload.Kind)
	s.Equal(3, payload.Position)
	s.True(payload.AutoSelected)

	s.True(s.storedGame().GetPlayer("alice").Revealed[3])
}

func (s *OrchestratorSuite) TestSelfExposeRejectsPositionRevealedMeanwhile() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	s.random.QueueIntn(3)
	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "Z")
	s.Require().NoError(err)

	// While Alice's exposure choice is pending, Bob's guess reveals her
	// position 0
	_, err = s.orchestrator.GuessLetter(s.ctx, "ROOM01", "bob", "alice", "C")
	s.Require().NoError(err)
	s.True(s.storedGame().GetPlayer("alice").Revealed[0])

	// The candidate list was snapshotted before that reveal; picking the
	// now-visible position would dodge the exposure entirely
	_, err = s.orchestrator.SubmitSelection(s.ctx, "ROOM01", "alice", model.SelectionSelfExpose, 0)
	s.Require().ErrorIs(err, model.ErrInvalidPosition)

	// A still-hidden position resolves it
	outcome, err := s.orchestrator.SubmitSelection(s.ctx, "ROOM01", "alice", model.SelectionSelfExpose, 1)
	s.Require().NoError(err)
	s.Equal(0, outcome.Result.Points)

	g := s.storedGame()
	s.True(g.GetPlayer("alice").Revealed[1])
	s.Equal(model.TurnCardNone, g.PendingTurnCard)
}

func (s *OrchestratorSuite) TestSelfExposeTimeoutSkipsRevealedRightmost() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	s.random.QueueIntn(3)
	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "Z")
	s.Require().NoError(err)

	// Bob reveals Alice's rightmost position before her deadline
	_, err = s.orchestrator.GuessLetter(s.ctx, "ROOM01", "bob", "alice", "T")
	s.Require().NoError(err)
	s.True(s.storedGame().GetPlayer("alice").Revealed[3])

	s.clock.Advance(selection.DefaultTimeout)

	// The fallback lands on the rightmost position that is still hidden
	resolved := s.publisher.ofType(model.EventSelectionResolved)
	s.Require().Len(resolved, 1)
	payload := resolved[0].Payload.(model.SelectionResolvedPayload)
	s.Equal(model.SelectionSelfExpose, payload.Kind)
	s.Equal(2, payload.Position)
	s.True(payload.AutoSelected)

	g := s.storedGame()
	s.True(g.GetPlayer("alice").Revealed[2])
	s.False(g.GetPlayer("alice").Revealed[1])
}

func (s *OrchestratorSuite) TestBotTurnResolvesImmediately() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bot-1", word: "MOOD", isBot: true},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	// Alice misses, handing the turn to the bot, which acts in the same
	// call: the greedy strategy opens with E against her, also a miss
	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bot-1", "Z")
	s.Require().NoError(err)

	g := s.storedGame()
	s.Equal(model.PlayerID("alice"), g.CurrentTurnPlayerID)
	s.Equal(2, g.RoundNumber)
	s.Equal([]string{"E"}, g.GetPlayer("alice").MissedLetters)

	s.Len(s.publisher.ofType(model.EventGuessResult), 2)
	s.Len(s.publisher.ofType(model.EventTurnChanged), 2)
	// Back on the human's clock
	s.Equal(model.EpochMillis(s.clock.Now().Add(60*time.Second)), s.orchestrator.TurnDeadline("ROOM01"))
}

func (s *OrchestratorSuite) TestBotFirstPlayerActsOnBeginGame() {
	s.activeGame(
		seatedPlayer{id: "bot-1", word: "MOOD", isBot: true},
		seatedPlayer{id: "alice", word: "CAST"},
	)

	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	// The bot's opening guess (E against CAST) misses and the turn lands
	// on the human
	g := s.storedGame()
	s.Equal(model.PlayerID("alice"), g.CurrentTurnPlayerID)
	s.Len(s.publisher.ofType(model.EventGuessResult), 1)
}

func (s *OrchestratorSuite) TestGameOverStopsTheRoom() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "WORD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))

	outcome, err := s.orchestrator.GuessWord(s.ctx, "ROOM01", "alice", "bob", "WORD")
	s.Require().NoError(err)
	s.True(outcome.GameOver)

	over := s.publisher.ofType(model.EventGameOver)
	s.Require().Len(over, 1)
	payload := over[0].Payload.(model.GameOverPayload)
	s.Equal(model.PlayerID("alice"), payload.WinnerID)
	s.Require().Len(payload.Ranking, 2)
	s.Equal(1, payload.Ranking[0].Rank)

	g := s.storedGame()
	s.Equal(model.GameStatusCompleted, g.Status)
	s.Equal(int64(0), s.orchestrator.TurnDeadline("ROOM01"))

	// No timer may fire afterwards
	s.clock.Advance(time.Hour)
	s.Empty(s.publisher.ofType(model.EventTurnTimeout))

	_, err = s.orchestrator.GuessLetter(s.ctx, "ROOM01", "bob", "alice", "C")
	s.Require().ErrorIs(err, model.ErrGameComplete)
}

func (s *OrchestratorSuite) TestTeardownRoomCancelsEverything() {
	s.activeGame(
		seatedPlayer{id: "alice", word: "CAST"},
		seatedPlayer{id: "bob", word: "MOOD"},
	)
	s.Require().NoError(s.orchestrator.BeginGame(s.ctx, "ROOM01"))
	_, err := s.orchestrator.GuessLetter(s.ctx, "ROOM01", "alice", "bob", "O")
	s.Require().NoError(err)
	s.True(s.selections.HasBlocking("ROOM01"))

	s.orchestrator.TeardownRoom("ROOM01")

	s.Equal(int64(0), s.orchestrator.TurnDeadline("ROOM01"))
	s.Equal(0, s.selections.PendingCount())

	s.clock.Advance(time.Hour)
	s.Empty(s.publisher.ofType(model.EventTurnTimeout))
	s.Empty(s.publisher.ofType(model.EventSelectionResolved))
}
