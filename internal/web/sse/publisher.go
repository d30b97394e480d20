package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/jsherman999/probe-go/internal/model"
)

// Publisher adapts the hub manager to the event stream the game flow emits:
// each event is JSON-encoded and broadcast to the room's hub under its type
// name. Rooms nobody is watching are skipped.
type Publisher struct {
	hubs   *HubManager
	logger *slog.Logger
}

// NewPublisher creates a new Publisher over a hub manager
func NewPublisher(hubs *HubManager, logger *slog.Logger) *Publisher {
	return &Publisher{
		hubs:   hubs,
		logger: logger.With(slog.String("component", "sse-publisher")),
	}
}

// Publish broadcasts an event to the room's connected clients
func (p *Publisher) Publish(event model.Event) {
	hub := p.hubs.GetHub(event.RoomCode)
	if hub == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to encode event",
			slog.String("room", string(event.RoomCode)),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Type), string(data))
}
