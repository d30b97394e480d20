package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jsherman999/probe-go/internal/api/middleware"
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/services/room"
	"github.com/jsherman999/probe-go/internal/web/sse"
)

// EventsHandler serves the per-room SSE stream
type EventsHandler struct {
	rooms *room.Controller
	hubs  *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(rooms *room.Controller, hubs *sse.HubManager) *EventsHandler {
	return &EventsHandler{rooms: rooms, hubs: hubs}
}

// Stream handles GET /api/v1/rooms/{code}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := middleware.MustGetPlayerID(r.Context())

	g, err := h.rooms.GetGame(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	if g.GetPlayer(playerID) == nil {
		WriteError(w, model.ErrNotInRoom)
		return
	}

	hub := h.hubs.GetOrCreateHub(code)
	sse.ServeSSE(w, r, hub, playerID)
}
