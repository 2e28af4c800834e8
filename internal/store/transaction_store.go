package store

import (
	"context"
	"sync"

	"lexobank/internal/models"
)

// TransactionStore is the append-only transaction log, one JSON document.
type TransactionStore struct {
	mu   sync.RWMutex
	path string
}

func NewTransactionStore(path string) *TransactionStore {
	return &TransactionStore{path: path}
}

func (s *TransactionStore) Append(ctx context.Context, transaction models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	transactions, err := s.load()
	if err != nil {
		return err
	}
	transactions = append(transactions, transaction)
	return writeDocument(s.path, transactions)
}

// ListByUser returns every transaction where the user is the sender or the
// recipient; external transfers are included through the sender side.
func (s *TransactionStore) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	transactions, err := s.load()
	if err != nil {
		return nil, err
	}
	history := make([]models.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		if transaction.SenderID == userID || transaction.RecipientID == userID {
			history = append(history, transaction)
		}
	}
	return history, nil
}

func (s *TransactionStore) ListAll(ctx context.Context) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

func (s *TransactionStore) load() ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if err := readDocument(s.path, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}
