package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/gotogether/server/models"
	"github.com/gotogether/server/utils"
)

// Event names pushed over the socket.
const (
	EventNotification = "notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks open websocket connections per user so new notifications
// can be pushed without polling. A user may hold several connections
// (multiple tabs/devices).
type Hub struct {
	clients map[uint]map[*websocket.Conn]struct{}
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Register(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]struct{})
	}
	h.clients[userID][conn] = struct{}{}
}

func (h *Hub) Unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
	conn.Close()
}

// PushNotification sends a freshly created notification to every open
// connection of its recipient. Best effort: a dead connection is
// dropped, the caller never sees an error.
func (h *Hub) PushNotification(notif models.Notification) {
	h.push(notif.UserID, Message{
		Event: EventNotification,
		Data:  notif,
	})
}

func (h *Hub) push(userID uint, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients[userID] {
		if err := conn.WriteJSON(msg); err != nil {
			utils.ErrorLogger.Printf("websocket push to user %d failed: %v", userID, err)
			delete(h.clients[userID], conn)
			conn.Close()
		}
	}
}
