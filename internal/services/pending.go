package services

import (
	"sync"
	"time"

	"lexobank/internal/models"
)

// PendingRegistry holds provisional registrations between the register and
// create-pin steps. Entries live in memory only; the user record is not
// persisted until a PIN is set.
type PendingRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]pendingEntry
}

type pendingEntry struct {
	user      models.User
	expiresAt time.Time
}

func NewPendingRegistry(ttl time.Duration) *PendingRegistry {
	return &PendingRegistry{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]pendingEntry),
	}
}

func (r *PendingRegistry) Put(id string, user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for key, entry := range r.entries {
		if now.After(entry.expiresAt) {
			delete(r.entries, key)
		}
	}
	r.entries[id] = pendingEntry{user: user, expiresAt: now.Add(r.ttl)}
}

// Take removes and returns the pending registration for id.
func (r *PendingRegistry) Take(id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return models.User{}, ErrNoPendingRegistration
	}
	delete(r.entries, id)
	if r.now().After(entry.expiresAt) {
		return models.User{}, ErrSessionExpired
	}
	return entry.user, nil
}
