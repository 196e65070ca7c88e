package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks the WebSocket connection of each signed-in user, keyed by user
// id. Owners get pushed approval/rejection outcomes; suppliers get pushed
// new requests against their stock.
type Hub struct {
	clients map[int64]*websocket.Conn
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*websocket.Conn),
	}
}

// Register adds a client connection, replacing any previous one for the
// same user.
func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = conn
	log.Printf("WebSocket client registered: %d", userID)
}

// Unregister removes a client connection.
func (h *Hub) Unregister(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		log.Printf("WebSocket client unregistered: %d", userID)
	}
}

// Send delivers a message to one user. An offline user is not an error; the
// notification is simply dropped.
func (h *Hub) Send(userID int64, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[userID]
	if !ok {
		return nil
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}

// Notify marshals an event payload and sends it to one user. Marshal or
// write failures are logged, never propagated: notifications are best-effort
// and must not fail the operation that triggered them.
func (h *Hub) Notify(userID int64, event string, payload interface{}) {
	message, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		log.Printf("Failed to marshal %s notification: %v", event, err)
		return
	}
	if err := h.Send(userID, message); err != nil {
		log.Printf("Failed to send %s notification to %d: %v", event, userID, err)
	}
}
