// Package state keeps track of which workflow each user is in between
// messages.
package state

import (
	"sync"

	"github.com/minhtran/troly_bot/internal/model"
)

// Store holds the per-user workflow mode. Implementations must be safe for
// concurrent use: the webhook entrypoint may run handlers for the same user
// in parallel.
type Store interface {
	// Get returns the user's current mode, ModeIdle for unseen users.
	Get(userID int64) model.Mode

	// Set records the user's mode.
	Set(userID int64, m model.Mode)

	// Exchange sets the user's mode and returns the previous one in a single
	// step. The dispatcher uses it to consume a pending mode, so two rapid
	// messages from one user cannot both run the same workflow.
	Exchange(userID int64, m model.Mode) model.Mode
}

// MemoryStore is a process-local Store. Entries are never evicted and nothing
// survives a restart.
type MemoryStore struct {
	mu    sync.Mutex
	modes map[int64]model.Mode
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{modes: make(map[int64]model.Mode)}
}

func (s *MemoryStore) Get(userID int64) model.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modes[userID]
}

func (s *MemoryStore) Set(userID int64, m model.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[userID] = m
}

func (s *MemoryStore) Exchange(userID int64, m model.Mode) model.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.modes[userID]
	s.modes[userID] = m
	return prev
}
