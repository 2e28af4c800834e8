package store

import (
	"context"
	"sync"

	"lexobank/internal/models"
)

// ChatStore is the append-only chat log, one JSON document. History lookups
// scan the full log; there is no pagination or index.
type ChatStore struct {
	mu   sync.RWMutex
	path string
}

func NewChatStore(path string) *ChatStore {
	return &ChatStore{path: path}
}

func (s *ChatStore) Append(ctx context.Context, message models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages, err := s.load()
	if err != nil {
		return err
	}
	messages = append(messages, message)
	return writeDocument(s.path, messages)
}

// ListBetween returns the conversation between two participants in either
// direction, in append order.
func (s *ChatStore) ListBetween(ctx context.Context, userID, chatWith string) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages, err := s.load()
	if err != nil {
		return nil, err
	}
	conversation := make([]models.ChatMessage, 0, len(messages))
	for _, message := range messages {
		if (message.SenderID == userID && message.RecipientID == chatWith) ||
			(message.SenderID == chatWith && message.RecipientID == userID) {
			conversation = append(conversation, message)
		}
	}
	return conversation, nil
}

func (s *ChatStore) load() ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	if err := readDocument(s.path, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
