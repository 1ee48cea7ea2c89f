package in_memory

import (
	"context"
	"sync"

	"github.com/valeradishlevii/trade-api-sample/internal/port"
)

var _ port.SessionStore = (*SessionStore)(nil)

// SessionStore is a map-backed session store for tests and local runs
// without Redis. Tokens never expire.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]int64
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]int64)}
}

func (s *SessionStore) Get(ctx context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[token]
	if !ok {
		return 0, port.ErrNotFound
	}
	return id, nil
}

func (s *SessionStore) Set(ctx context.Context, token string, customerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = customerID
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
