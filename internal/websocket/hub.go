package websocket

import (
	"encoding/json"
	"sync"
)

// Event names pushed to clients.
const (
	EventNotification = "notification"
	EventNewMessage   = "new-message"
	EventMessageSent  = "message-sent"
	EventChatHistory  = "chat-history"
)

// Event names accepted from clients.
const (
	EventJoinChat    = "join-chat"
	EventSendMessage = "send-message"
	EventGetMessages = "get-messages"
)

// Event is the wire envelope for everything pushed over the socket.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Notification describes a balance change pushed to a user's room.
type Notification struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Amount  string `json:"amount"`
}

// Hub tracks connected clients per room. Rooms are keyed by user identifier;
// the support side joins under its own identifier. Delivery is at-most-once:
// a room with no subscribers, or a client with a full send buffer, drops the
// event.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(room string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}
}

func (h *Hub) Unregister(room string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		return
	}
	delete(h.rooms[room], client)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
}

// Emit pushes an event to every client subscribed to the room without
// blocking the caller.
func (h *Hub) Emit(room string, event Event) {
	payload, _ := json.Marshal(event)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[room] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
