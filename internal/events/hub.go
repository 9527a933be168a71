// Package events broadcasts engine domain events to connected WebSocket
// clients so an open UI can react (celebrations, badge counts, live lists)
// without polling.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Event is one domain occurrence: a chore completed today, a cash-out
// requested or approved, a bonus awarded, an approval queue change.
type Event struct {
	Type      string         `json:"type"`
	Entity    string         `json:"entity"`
	Action    string         `json:"action"`
	ProfileID string         `json:"profile_id,omitempty"`
	ID        string         `json:"id,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// New creates an Event with Type derived from entity and action.
func New(entity, action, profileID, id string, extra map[string]any) Event {
	return Event{
		Type:      fmt.Sprintf("%s_%s", entity, action),
		Entity:    entity,
		Action:    action,
		ProfileID: profileID,
		ID:        id,
		Extra:     extra,
	}
}

// Hub maintains the set of active WebSocket clients and fans events out.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast fans an event out to every client whose subscription matches.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal event", "type", ev.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if !c.wants(ev) {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client buffer full, drop rather than block the engine
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
