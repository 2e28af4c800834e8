package store

import (
	"context"
	"sync"

	"lexobank/internal/models"
)

// UserStore keeps the whole user collection in a single JSON document.
// Every operation reloads the document, mutates it in memory and rewrites it
// wholesale; the mutex makes each read-modify-write block atomic so that two
// concurrent transfers cannot race past the balance check.
type UserStore struct {
	mu   sync.RWMutex
	path string
}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users, err := s.load()
	if err != nil {
		return models.User{}, err
	}
	for _, user := range users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *UserStore) GetByPhone(ctx context.Context, phone string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users, err := s.load()
	if err != nil {
		return models.User{}, err
	}
	for _, user := range users {
		if user.Phone == phone {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *UserStore) GetByAccountNumber(ctx context.Context, accountNumber string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users, err := s.load()
	if err != nil {
		return models.User{}, err
	}
	for _, user := range users {
		if user.AccountNumber == accountNumber {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *UserStore) Append(ctx context.Context, user models.User) error {
	return s.Mutate(ctx, func(users []models.User) ([]models.User, error) {
		return append(users, user), nil
	})
}

// Mutate runs fn against the current collection under the write lock and
// persists whatever fn returns. Returning an error from fn aborts the write
// and leaves the document untouched.
func (s *UserStore) Mutate(ctx context.Context, fn func(users []models.User) ([]models.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return err
	}
	updated, err := fn(users)
	if err != nil {
		return err
	}
	return writeDocument(s.path, updated)
}

func (s *UserStore) load() ([]models.User, error) {
	users := []models.User{}
	if err := readDocument(s.path, &users); err != nil {
		return nil, err
	}
	return users, nil
}
