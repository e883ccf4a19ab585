package session

import (
	"context"
	"sync"
)

// Store persists authenticated sessions by token.
type Store interface {
	Save(ctx context.Context, s *Session) error
	// Get returns ErrNotFound when no session is stored for token.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete succeeds when the token is unknown.
	Delete(ctx context.Context, token string) error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	stored := *s
	if s.Identity != nil {
		identity := *s.Identity
		stored.Identity = &identity
	}

	m.mu.Lock()
	m.sessions[hashToken(s.Token)] = stored
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	stored, ok := m.sessions[hashToken(token)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	if stored.Identity != nil {
		identity := *stored.Identity
		stored.Identity = &identity
	}
	return &stored, nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, hashToken(token))
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
