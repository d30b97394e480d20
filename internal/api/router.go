package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jsherman999/probe-go/internal/api/handler"
	apimiddleware "github.com/jsherman999/probe-go/internal/api/middleware"
	"github.com/jsherman999/probe-go/internal/dependencies/clock"
	"github.com/jsherman999/probe-go/internal/services/room"
	"github.com/jsherman999/probe-go/internal/services/turn"
	"github.com/jsherman999/probe-go/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	RoomController *room.Controller
	Orchestrator   *turn.Orchestrator
	Publisher      turn.Publisher
	HubManager     *sse.HubManager
	Clock          clock.Clock
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.Orchestrator, cfg.Publisher, cfg.HubManager, cfg.Clock)
	gameHandler := handler.NewGameHandler(cfg.Orchestrator)
	eventsHandler := handler.NewEventsHandler(cfg.RoomController, cfg.HubManager)

	identity := apimiddleware.Identity()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(apimiddleware.Logging(cfg.Logger))

	// Creating and joining mint a fresh identity, so they take none
	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/join", roomHandler.Join).Methods(http.MethodPost)

	// Everything else acts as a specific player
	rooms := api.PathPrefix("/rooms/{code}").Subrouter()
	rooms.Use(identity)
	rooms.HandleFunc("", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("", roomHandler.Abort).Methods(http.MethodDelete)
	rooms.HandleFunc("/turns", roomHandler.TurnRecords).Methods(http.MethodGet)
	rooms.HandleFunc("/bots", roomHandler.AddBot).Methods(http.MethodPost)
	rooms.HandleFunc("/bots/{bot_id}", roomHandler.RemoveBot).Methods(http.MethodDelete)
	rooms.HandleFunc("/start", roomHandler.Start).Methods(http.MethodPost)
	rooms.HandleFunc("/word", roomHandler.CommitWord).Methods(http.MethodPost)

	rooms.HandleFunc("/guesses/letter", gameHandler.GuessLetter).Methods(http.MethodPost)
	rooms.HandleFunc("/guesses/word", gameHandler.GuessWord).Methods(http.MethodPost)
	rooms.HandleFunc("/selections", gameHandler.SubmitSelection).Methods(http.MethodPost)
	rooms.HandleFunc("/word-window", gameHandler.OpenWordWindow).Methods(http.MethodPost)
	rooms.HandleFunc("/word-window", gameHandler.CancelWordWindow).Methods(http.MethodDelete)
	rooms.HandleFunc("/word-window/guess", gameHandler.SubmitWordWindowGuess).Methods(http.MethodPost)

	rooms.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no identity)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
