package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/jsherman999/probe-go/internal/api/middleware"
	"github.com/jsherman999/probe-go/internal/api/request"
	"github.com/jsherman999/probe-go/internal/api/response"
	"github.com/jsherman999/probe-go/internal/dependencies/clock"
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/services/room"
	"github.com/jsherman999/probe-go/internal/services/turn"
	"github.com/jsherman999/probe-go/internal/web/sse"
)

// RoomHandler handles room lifecycle endpoints
type RoomHandler struct {
	rooms     *room.Controller
	turns     *turn.Orchestrator
	publisher turn.Publisher
	hubs      *sse.HubManager
	clock     clock.Clock
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms *room.Controller, turns *turn.Orchestrator, publisher turn.Publisher, hubs *sse.HubManager, clk clock.Clock) *RoomHandler {
	return &RoomHandler{
		rooms:     rooms,
		turns:     turns,
		publisher: publisher,
		hubs:      hubs,
		clock:     clk,
	}
}

func (h *RoomHandler) publish(code model.RoomCode, eventType model.EventType, payload any) {
	if h.publisher == nil {
		return
	}
	h.publisher.Publish(model.Event{
		Type:      eventType,
		RoomCode:  code,
		Timestamp: model.EpochMillis(h.clock.Now()),
		Payload:   payload,
	})
}

func (h *RoomHandler) view(g *model.Game, viewer model.PlayerID) *model.GameView {
	return g.ViewFor(viewer, h.turns.TurnDeadline(g.RoomCode))
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	hostID := model.PlayerID(uuid.NewString())
	g, err := h.rooms.CreateRoom(r.Context(), hostID, req.DisplayName, req.TurnTimerSeconds)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomResponse{
		PlayerID: hostID,
		Game:     h.view(g, hostID),
	})
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	viewer := middleware.MustGetPlayerID(r.Context())

	g, err := h.rooms.GetGame(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	if g.GetPlayer(viewer) == nil {
		WriteError(w, model.ErrNotInRoom)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomResponse{Game: h.view(g, viewer)})
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	playerID := model.PlayerID(uuid.NewString())
	g, err := h.rooms.JoinRoom(r.Context(), code, playerID, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(code, model.EventPlayerJoined, model.PlayerJoinedPayload{
		PlayerID:    playerID,
		DisplayName: req.DisplayName,
	})

	response.JSON(w, http.StatusCreated, response.RoomResponse{
		PlayerID: playerID,
		Game:     h.view(g, playerID),
	})
}

// AddBot handles POST /api/v1/rooms/{code}/bots
func (h *RoomHandler) AddBot(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := middleware.MustGetPlayerID(r.Context())

	var req request.AddBotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	bot, err := h.rooms.AddBot(r.Context(), code, playerID, req.Strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(code, model.EventBotAdded, model.PlayerJoinedPayload{
		PlayerID:    bot.ID,
		DisplayName: bot.DisplayName,
		IsBot:       true,
	})

	response.JSON(w, http.StatusCreated, response.BotResponse{
		BotID:       bot.ID,
		DisplayName: bot.DisplayName,
		Strategy:    bot.BotStrategy,
	})
}

// RemoveBot handles DELETE /api/v1/rooms/{code}/bots/{bot_id}
func (h *RoomHandler) RemoveBot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := model.RoomCode(vars["code"])
	botID := model.PlayerID(vars["bot_id"])
	playerID := middleware.MustGetPlayerID(r.Context())

	if err := h.rooms.RemoveBot(r.Context(), code, playerID, botID); err != nil {
		WriteError(w, err)
		return
	}

	h.publish(code, model.EventPlayerLeft, model.PlayerJoinedPayload{PlayerID: botID, IsBot: true})

	response.NoContent(w)
}

// Start handles POST /api/v1/rooms/{code}/start
// Moves the room into word selection; bots commit their words immediately.
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := middleware.MustGetPlayerID(r.Context())

	g, err := h.rooms.StartWordSelection(r.Context(), code, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	for _, p := range g.Players {
		if p.HasCommittedWord() {
			h.publish(code, model.EventWordCommitted, model.WordCommittedPayload{
				PlayerID:   p.ID,
				WordLength: len(p.PaddedWord),
			})
		}
	}

	// A bots-only remainder can finish word selection on the spot
	if g.Status == model.GameStatusActive {
		if err := h.turns.BeginGame(r.Context(), code); err != nil {
			WriteError(w, err)
			return
		}
		g, err = h.rooms.GetGame(r.Context(), code)
		if err != nil {
			WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, response.RoomResponse{Game: h.view(g, playerID)})
}

// CommitWord handles POST /api/v1/rooms/{code}/word
func (h *RoomHandler) CommitWord(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := middleware.MustGetPlayerID(r.Context())

	var req request.CommitWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.rooms.CommitWord(r.Context(), code, playerID, req.Word, req.FrontPadding, req.BackPadding)
	if err != nil {
		WriteError(w, err)
		return
	}

	if p := g.GetPlayer(playerID); p != nil {
		h.publish(code, model.EventWordCommitted, model.WordCommittedPayload{
			PlayerID:   playerID,
			WordLength: len(p.PaddedWord),
		})
	}

	// The last committed word activates the game
	if g.Status == model.GameStatusActive {
		if err := h.turns.BeginGame(r.Context(), code); err != nil {
			WriteError(w, err)
			return
		}
		g, err = h.rooms.GetGame(r.Context(), code)
		if err != nil {
			WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, response.RoomResponse{Game: h.view(g, playerID)})
}

// Abort handles DELETE /api/v1/rooms/{code}
func (h *RoomHandler) Abort(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := middleware.MustGetPlayerID(r.Context())

	if err := h.rooms.AbortGame(r.Context(), code, playerID); err != nil {
		WriteError(w, err)
		return
	}

	h.publish(code, model.EventGameAborted, nil)
	h.turns.TeardownRoom(code)
	if h.hubs != nil {
		h.hubs.RemoveHub(code)
	}

	response.NoContent(w)
}

// TurnRecords handles GET /api/v1/rooms/{code}/turns
func (h *RoomHandler) TurnRecords(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	viewer := middleware.MustGetPlayerID(r.Context())

	g, err := h.rooms.GetGame(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	if g.GetPlayer(viewer) == nil {
		WriteError(w, model.ErrNotInRoom)
		return
	}

	records, err := h.rooms.TurnRecords(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TurnRecordsResponse{Records: records})
}
