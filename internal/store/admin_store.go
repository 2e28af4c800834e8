package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"lexobank/internal/models"
)

// AdminStore holds the singleton admin record.
type AdminStore struct {
	mu   sync.RWMutex
	path string
}

func NewAdminStore(path string) *AdminStore {
	return &AdminStore{path: path}
}

// Seed writes the admin record at first boot only; an existing record is
// never overwritten.
func (s *AdminStore) Seed(ctx context.Context, admin models.AdminAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat admin record: %w", err)
	}
	return writeDocument(s.path, admin)
}

func (s *AdminStore) Get(ctx context.Context) (models.AdminAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var admin models.AdminAccount
	if err := readDocument(s.path, &admin); err != nil {
		return models.AdminAccount{}, err
	}
	if admin.Email == "" {
		return models.AdminAccount{}, ErrNotFound
	}
	return admin, nil
}
