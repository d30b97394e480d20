package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/jsherman999/probe-go/internal/dependencies/mocks"
	"github.com/jsherman999/probe-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, mockRandom, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small wordlist for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		"ABLE", "ACID", "AQUA", "BARN", "BIRD", "BOLD", "CALM", "CARD",
		"DARK", "DOOR", "EAST", "ECHO", "FARM", "FISH", "GOLD", "HAND",
		"IRON", "JAZZ", "KITE", "LAMP", "MOON", "NOTE", "OPEN", "PROBE",
		"QUIET", "RIVER", "STONE", "TABLE", "UNION", "VIVID", "WATER",
		"YIELD", "ZEBRA", "ANCHOR", "BRIDGE", "CANDLE", "DRAGON",
		"ENGINE", "FOREST", "GARDEN", "HARBOR", "ISLAND", "JUNGLE",
		"KINGDOM", "LANTERN", "MACHINE", "NETWORK", "OCTOPUS",
		"PAINTING", "QUESTION", "RAILROAD", "SANDWICH", "TELESCOPE",
	}
	return t.DictionaryService.LoadWords(words)
}
