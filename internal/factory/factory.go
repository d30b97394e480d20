package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/jsherman999/probe-go/internal/dependencies/clock"
	"github.com/jsherman999/probe-go/internal/dependencies/random"
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/services/bot"
	"github.com/jsherman999/probe-go/internal/services/dictionary"
	"github.com/jsherman999/probe-go/internal/services/game"
	"github.com/jsherman999/probe-go/internal/services/room"
	"github.com/jsherman999/probe-go/internal/services/scoring"
	"github.com/jsherman999/probe-go/internal/services/selection"
	"github.com/jsherman999/probe-go/internal/services/turn"
	"github.com/jsherman999/probe-go/internal/storage"
	"github.com/jsherman999/probe-go/internal/storage/memory"
	redisstorage "github.com/jsherman999/probe-go/internal/storage/redis"
	"github.com/jsherman999/probe-go/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	ScoringService    *scoring.Service
	GameController    *game.Controller
	Selections        *selection.Coordinator
	BotService        *bot.Service
	RoomController    *room.Controller
	Orchestrator      *turn.Orchestrator
	HubManager        *sse.HubManager
	Publisher         *sse.Publisher
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	dictService := dictionary.New(store, rnd)
	scoringService := scoring.New()

	strategies := map[string]bot.Strategy{
		model.BotStrategyGreedy: bot.NewGreedyStrategy(scoringService),
		model.BotStrategyRandom: bot.NewRandomStrategy(rnd),
	}
	botService := bot.NewService(strategies, dictService, rnd, logger)

	gameController := game.NewController(store, scoringService, clk, rnd, logger)
	selections := selection.NewCoordinator(clk, logger)
	roomController := room.NewController(store, dictService, botService, clk, rnd, logger)

	hubManager := sse.NewHubManager(logger)
	publisher := sse.NewPublisher(hubManager, logger)
	orchestrator := turn.NewOrchestrator(store, gameController, selections, botService, clk, publisher, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		ScoringService:    scoringService,
		GameController:    gameController,
		Selections:        selections,
		BotService:        botService,
		RoomController:    roomController,
		Orchestrator:      orchestrator,
		HubManager:        hubManager,
		Publisher:         publisher,
	}
}
