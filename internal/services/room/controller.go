package room

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsherman999/probe-go/internal/dependencies/clock"
	"github.com/jsherman999/probe-go/internal/dependencies/random"
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/services/bot"
	"github.com/jsherman999/probe-go/internal/services/dictionary"
	"github.com/jsherman999/probe-go/internal/storage"
)

const (
	// RoomCodeAlphabet avoids easily-confused characters
	RoomCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6

	MinPlayers = 2
	MaxPlayers = 4
)

// Controller manages room lifecycle: creation, membership, word commitment,
// and the transition into an active game
type Controller struct {
	storage    storage.Storage
	dictionary *dictionary.Service
	bots       *bot.Service
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
}

// NewController creates a new room Controller
func NewController(
	store storage.Storage,
	dictService *dictionary.Service,
	botService *bot.Service,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    store,
		dictionary: dictService,
		bots:       botService,
		clock:      clk,
		random:     rnd,
		logger:     logger.With(slog.String("component", "room-controller")),
	}
}

// CreateRoom creates a new room with the host as its first player
func (c *Controller) CreateRoom(ctx context.Context, hostID model.PlayerID, hostName string, turnTimerSeconds int) (*model.Game, error) {
	code, err := c.generateRoomCode(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		RoomCode:         code,
		Status:           model.GameStatusWaiting,
		HostID:           hostID,
		TurnTimerSeconds: turnTimerSeconds,
		Players: []*model.Player{{
			ID:          hostID,
			DisplayName: hostName,
			JoinedAt:    now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room_code", string(code)),
		slog.String("host_id", string(hostID)),
		slog.Int("turn_timer_seconds", turnTimerSeconds),
	)

	return game, nil
}

// generateRoomCode produces an unused room code
func (c *Controller) generateRoomCode(ctx context.Context) (model.RoomCode, error) {
	for {
		code := model.RoomCode(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		exists, err := c.storage.GameExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}

// GetGame retrieves a room's game by code
func (c *Controller) GetGame(ctx context.Context, code model.RoomCode) (*model.Game, error) {
	return c.storage.GetGame(ctx, code)
}

// JoinRoom adds a player to a waiting room
func (c *Controller) JoinRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID, displayName string) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, code)
	if err != nil {
		return nil, err
	}

	if game.Status != model.GameStatusWaiting {
		return nil, model.ErrRoomNotJoinable
	}
	if game.GetPlayer(playerID) != nil {
		return nil, model.ErrAlreadyInRoom
	}
	if len(game.Players) >= MaxPlayers {
		return nil, model.ErrRoomNotJoinable
	}

	game.Players = append(game.Players, &model.Player{
		ID:          playerID,
		DisplayName: displayName,
		JoinedAt:    c.clock.Now(),
	})
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player joined room",
		slog.String("room_code", string(code)),
		slog.String("player_id", string(playerID)),
		slog.Int("player_count", len(game.Players)),
	)

	return game, nil
}

// AddBot adds a bot player to a waiting room. Only the host can add bots.
func (c *Controller) AddBot(ctx context.Context, code model.RoomCode, requestingPlayerID model.PlayerID, strategy string) (*model.Player, error) {
	if err := c.bots.ValidateStrategy(strategy); err != nil {
		return nil, err
	}

	game, err := c.storage.GetGame(ctx, code)
	if err != nil {
		return nil, err
	}

	if game.HostID != requestingPlayerID {
		return nil, model.ErrNotHost
	}
	if game.Status != model.GameStatusWaiting {
		return nil, model.ErrRoomNotJoinable
	}
	if len(game.Players) >= MaxPlayers {
		return nil, model.ErrRoomNotJoinable
	}

	botCount := 0
	for _, p := range game.Players {
		if p.IsBot {
			botCount++
		}
	}

	botPlayer := &model.Player{
		ID:          c.bots.NewBotID(),
		DisplayName: model.BotStrategyDisplayName(strategy) + " Bot " + string(rune('1'+botCount)),
		IsBot:       true,
		BotStrategy: strategy,
		JoinedAt:    c.clock.Now(),
	}

	game.Players = append(game.Players, botPlayer)
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("bot added to room",
		slog.String("room_code", string(code)),
		slog.String("bot_id", string(botPlayer.ID)),
		slog.String("strategy", strategy),
	)

	return botPlayer, nil
}

// RemoveBot removes a bot from a waiting room. Only the host can remove bots.
func (c *Controller) RemoveBot(ctx context.Context, code model.RoomCode, requestingPlayerID, botID model.PlayerID) error {
	game, err := c.storage.GetGame(ctx, code)
	if err != nil {
		return err
	}

	if game.HostID != requestingPlayerID {
		return model.ErrNotHost
	}
	if game.Status != model.GameStatusWaiting {
		return model.ErrRoomNotJoinable
	}

	for i, p := range game.Players {
		if p.ID != botID {
			continue
		}
		if !p.IsBot {
			return model.ErrNotBot
		}
		game.Players = append(game.Players[:i], game.Players[i+1:]...)
		game.UpdatedAt = c.clock.Now()
		return c.storage.SaveGame(ctx, game)
	}
	return model.ErrNotInRoom
}

// StartWordSelection moves a waiting room into the word-selection phase and
// commits every bot's word immediately
func (c *Controller) StartWordSelection(ctx context.Context, code model.RoomCode, requestingPlayerID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, code)
	if err != nil {
		return nil, err
	}

	if game.HostID != requestingPlayerID {
		return nil, model.ErrNotHost
	}
	if game.Status != model.GameStatusWaiting {
		return nil, model.ErrRoomNotJoinable
	}
	if len(game.Players) < MinPlayers {
		return nil, model.ErrInsufficientPlayers
	}

	game.Status = model.GameStatusWordSelection

	for _, p := range game.Players {
		if !p.IsBot {
			continue
		}
		word, front, back := c.bots.ChooseBotWord(p)
		if err := commitWord(p, word, front, back); err != nil {
			return nil, err
		}
	}

	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("word selection started",
		slog.String("room_code", string(code)),
		slog.Int("player_count", len(game.Players)),
	)

	return game, nil
}

// CommitWord locks in a player's secret word with optional blank padding.
// When the last player commits, the game activates: turn order is shuffled
// and the first turn assigned. The caller is responsible for starting the
// turn clock when the returned game is active.
func (c *Controller) CommitWord(ctx context.Context, code model.RoomCode, playerID model.PlayerID, word string, frontPadding, backPadding int) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, code)
	if err != nil {
		return nil, err
	}

	if game.Status != model.GameStatusWordSelection {
		return nil, model.ErrNotSelectingWords
	}

	player := game.GetPlayer(playerID)
	if player == nil {
		return nil, model.ErrNotInRoom
	}
	if player.HasCommittedWord() {
		return nil, model.ErrWordAlreadyCommitted
	}

	word = strings.ToUpper(strings.TrimSpace(word))
	if !c.dictionary.IsValidWord(word) {
		return nil, model.ErrWordNotInDictionary
	}
	if err := commitWord(player, word, frontPadding, backPadding); err != nil {
		return nil, err
	}

	if game.AllWordsCommitted() {
		c.activate(game)
	}

	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("word committed",
		slog.String("room_code", string(code)),
		slog.String("player_id", string(playerID)),
		slog.Int("padded_length", len(player.PaddedWord)),
	)

	return game, nil
}

// commitWord validates and applies a word commitment to a player
func commitWord(p *model.Player, word string, frontPadding, backPadding int) error {
	if err := model.ValidateSecretWord(word); err != nil {
		return err
	}
	padded, err := model.BuildPaddedWord(word, frontPadding, backPadding)
	if err != nil {
		return err
	}

	p.SecretWord = word
	p.SecretWordDigest = model.WordDigest(word)
	p.PaddedWord = padded
	p.FrontPadding = frontPadding
	p.BackPadding = backPadding
	p.Revealed = make([]bool, len(padded))
	return nil
}

// activate shuffles turn order and assigns the first turn
func (c *Controller) activate(game *model.Game) {
	order := make([]int, len(game.Players))
	for i := range order {
		order[i] = i
	}
	c.random.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	for i, p := range game.Players {
		p.TurnOrder = order[i]
	}

	game.Status = model.GameStatusActive
	game.RoundNumber = 1
	game.CurrentTurnPlayerID = game.PlayersInTurnOrder()[0].ID
	game.CurrentTurnStartedAt = c.clock.Now()

	c.logger.Info("game activated",
		slog.String("room_code", string(game.RoomCode)),
		slog.String("first_player", string(game.CurrentTurnPlayerID)),
	)
}

// AbortGame removes a room and its history. Only the host can abort.
// Callers must tear down the room's timers alongside.
func (c *Controller) AbortGame(ctx context.Context, code model.RoomCode, requestingPlayerID model.PlayerID) error {
	game, err := c.storage.GetGame(ctx, code)
	if err != nil {
		return err
	}
	if game.HostID != requestingPlayerID {
		return model.ErrNotHost
	}

	if err := c.storage.DeleteTurnRecords(ctx, code); err != nil {
		return err
	}
	if err := c.storage.DeleteGame(ctx, code); err != nil {
		return err
	}

	c.logger.Info("game aborted",
		slog.String("room_code", string(code)),
	)
	return nil
}

// TurnRecords returns the append-only guess history for a room
func (c *Controller) TurnRecords(ctx context.Context, code model.RoomCode) ([]*model.TurnRecord, error) {
	if _, err := c.storage.GetGame(ctx, code); err != nil {
		return nil, err
	}
	return c.storage.GetTurnRecords(ctx, code)
}
