package realtime

import (
	"encoding/json"
	"sync"

	"mmry/internal/cache"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains subscriber connections and fans cache events out to them.
type Hub struct {
	mu              sync.RWMutex
	userIdToClients map[string]map[Client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		userIdToClients: make(map[string]map[Client]struct{}),
	}
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIdToClients[userID]; !ok {
		h.userIdToClients[userID] = make(map[Client]struct{})
	}
	h.userIdToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIdToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIdToClients, userID)
		}
	}
}

// Subscribers returns the number of registered clients.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.userIdToClients {
		n += len(clients)
	}
	return n
}

// Broadcast sends a message to every registered client. Failed writes are
// left for the owning handler to clean up.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.userIdToClients {
		for c := range clients {
			c.Send(message)
		}
	}
}

// CacheEvent is the JSON frame sent to subscribers.
type CacheEvent struct {
	Cache string `json:"cache"`
	cache.Event
}

// Publisher returns a cache.Options.OnEvent callback that broadcasts the
// events of the named cache.
func (h *Hub) Publisher(name string) func(cache.Event) {
	return func(evt cache.Event) {
		if b, err := json.Marshal(CacheEvent{Cache: name, Event: evt}); err == nil {
			h.Broadcast(b)
		}
	}
}
