package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"lexobank/internal/models"

	"github.com/gorilla/websocket"
)

// ChatBackend persists chat traffic and answers history queries. The relay
// of new-message/message-sent events happens behind Send.
type ChatBackend interface {
	Send(ctx context.Context, senderID, recipientID, message, senderType string) (models.ChatMessage, error)
	History(ctx context.Context, userID, chatWith string) ([]models.ChatMessage, error)
}

type Client struct {
	conn *websocket.Conn
	send chan []byte

	mu    sync.Mutex
	rooms map[string]struct{}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection, subscribes it to the caller's own room and
// services chat events until the socket closes.
func ServeWS(w http.ResponseWriter, r *http.Request, hub *Hub, backend ChatBackend, identity string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
		return
	}
	client := &Client{
		conn:  conn,
		send:  make(chan []byte, 16),
		rooms: make(map[string]struct{}),
	}
	client.join(hub, identity)
	go client.writePump(hub)
	client.readPump(hub, backend)
}

func (c *Client) join(hub *Hub, room string) {
	if room == "" {
		return
	}
	c.mu.Lock()
	_, joined := c.rooms[room]
	if !joined {
		c.rooms[room] = struct{}{}
	}
	c.mu.Unlock()
	if !joined {
		hub.Register(room, c)
	}
}

func (c *Client) leaveAll(hub *Hub) {
	c.mu.Lock()
	rooms := make([]string, 0, len(c.rooms))
	for room := range c.rooms {
		rooms = append(rooms, room)
	}
	c.rooms = make(map[string]struct{})
	c.mu.Unlock()
	for _, room := range rooms {
		hub.Unregister(room, c)
	}
}

func (c *Client) enqueue(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

type inboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type sendMessagePayload struct {
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Message     string `json:"message"`
	SenderType  string `json:"senderType"`
}

type getMessagesPayload struct {
	UserID   string `json:"userId"`
	ChatWith string `json:"chatWith"`
}

func (c *Client) readPump(hub *Hub, backend ChatBackend) {
	defer func() {
		c.leaveAll(hub)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.handleEvent(hub, backend, payload)
	}
}

func (c *Client) handleEvent(hub *Hub, backend ChatBackend, payload []byte) {
	var event inboundEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return
	}
	ctx := context.Background()
	switch event.Event {
	case EventJoinChat:
		var room string
		if err := json.Unmarshal(event.Data, &room); err != nil {
			return
		}
		c.join(hub, room)
	case EventSendMessage:
		var msg sendMessagePayload
		if err := json.Unmarshal(event.Data, &msg); err != nil {
			return
		}
		// Fire-and-forget: a failed persist drops the message.
		_, _ = backend.Send(ctx, msg.SenderID, msg.RecipientID, msg.Message, msg.SenderType)
	case EventGetMessages:
		var query getMessagesPayload
		if err := json.Unmarshal(event.Data, &query); err != nil {
			return
		}
		history, err := backend.History(ctx, query.UserID, query.ChatWith)
		if err != nil {
			return
		}
		c.enqueue(Event{Event: EventChatHistory, Data: history})
	}
}

func (c *Client) writePump(hub *Hub) {
	ticker := time.NewTicker(50 * time.Second)
	defer func() {
		ticker.Stop()
		c.leaveAll(hub)
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
