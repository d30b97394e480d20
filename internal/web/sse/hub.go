package sse

import (
	"bytes"
	"log/slog"
	"sync"
	"time"

	"github.com/jsherman999/probe-go/internal/model"
)

// Hub fans room events out to the SSE clients subscribed to one room. Sends
// are non-blocking: a client that cannot drain its buffer loses messages
// rather than stalling the room.
type Hub struct {
	roomCode model.RoomCode
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]bool
	closed  bool
}

// NewHub creates a new Hub for a room
func NewHub(roomCode model.RoomCode, logger *slog.Logger) *Hub {
	return &Hub{
		roomCode: roomCode,
		logger:   logger.With(slog.String("room", string(roomCode))),
		clients:  make(map[*Client]bool),
	}
}

// Register adds a client to the hub. A client registered against a closed
// hub is immediately disconnected.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(client.send)
		return
	}
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("sse client registered",
		slog.String("player_id", string(client.playerID)),
		slog.Int("total_clients", total))
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	close(client.send)
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("sse client unregistered",
		slog.String("player_id", string(client.playerID)),
		slog.Duration("connection_duration", time.Since(client.connectedAt)),
		slog.Int("total_clients", total))
}

// BroadcastEvent sends a named SSE event with a data payload to every client
func (h *Hub) BroadcastEvent(eventName, data string) {
	message := formatSSEMessage(eventName, data)

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	dropped := 0
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("sse message dropped - client buffers full",
			slog.String("event", eventName),
			slog.Int("dropped", dropped))
	}
}

// Close disconnects every client and marks the hub unusable
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.logger.Info("sse hub closed")
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage renders the wire framing for one event. Each line of data
// carries its own "data: " prefix per the SSE spec.
func formatSSEMessage(eventName, data string) []byte {
	var buf bytes.Buffer
	buf.WriteString("event: ")
	buf.WriteString(eventName)
	buf.WriteByte('\n')
	start := 0
	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			buf.WriteString("data: ")
			buf.WriteString(data[start:i])
			buf.WriteByte('\n')
			start = i + 1
		}
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

// HubManager manages hubs for all rooms
type HubManager struct {
	logger *slog.Logger

	mu   sync.RWMutex
	hubs map[model.RoomCode]*Hub
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		logger: logger.With(slog.String("component", "sse")),
		hubs:   make(map[model.RoomCode]*Hub),
	}
}

// GetOrCreateHub returns the hub for a room, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(roomCode model.RoomCode) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[roomCode]; ok {
		return hub
	}
	hub := NewHub(roomCode, m.logger)
	m.hubs[roomCode] = hub
	return hub
}

// GetHub returns the hub for a room, or nil if it doesn't exist
func (m *HubManager) GetHub(roomCode model.RoomCode) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[roomCode]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(roomCode model.RoomCode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[roomCode]; ok {
		hub.Close()
		delete(m.hubs, roomCode)
		m.logger.Info("sse hub removed", slog.String("room", string(roomCode)))
	}
}

// CleanupEmptyHubs removes hubs with no clients
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for code, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, code)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", removed))
	}
}
