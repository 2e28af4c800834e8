package services

import (
	"context"
	"time"

	"lexobank/internal/models"
	"lexobank/internal/websocket"

	"github.com/google/uuid"
)

type ChatLog interface {
	Append(ctx context.Context, message models.ChatMessage) error
	ListBetween(ctx context.Context, userID, chatWith string) ([]models.ChatMessage, error)
}

// ChatService persists the append-only chat log and relays each message live
// to both participants' rooms.
type ChatService struct {
	chats ChatLog
	hub   NotificationHub
}

func NewChatService(chats ChatLog, hub NotificationHub) *ChatService {
	return &ChatService{chats: chats, hub: hub}
}

func (s *ChatService) Send(ctx context.Context, senderID, recipientID, message, senderType string) (models.ChatMessage, error) {
	chatMessage := models.ChatMessage{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Message:     message,
		SenderType:  senderType,
		Timestamp:   time.Now().UTC(),
		Read:        false,
	}
	if err := s.chats.Append(ctx, chatMessage); err != nil {
		return models.ChatMessage{}, err
	}
	s.hub.Emit(recipientID, websocket.Event{Event: websocket.EventNewMessage, Data: chatMessage})
	s.hub.Emit(senderID, websocket.Event{Event: websocket.EventMessageSent, Data: chatMessage})
	return chatMessage, nil
}

func (s *ChatService) History(ctx context.Context, userID, chatWith string) ([]models.ChatMessage, error) {
	return s.chats.ListBetween(ctx, userID, chatWith)
}
