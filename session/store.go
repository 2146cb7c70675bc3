package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when no session exists for an identity.
var ErrNotFound = errors.New("session not found")

// Store is the persistence contract the dialog engine is given. Load/Save are
// plain read-then-overwrite: no locking is assumed, so two concurrent messages
// from one identity can race and the later write wins. See the engine docs.
type Store interface {
	// Load returns the session for identity, or ErrNotFound.
	Load(ctx context.Context, identity string) (*Session, error)
	// Save writes the session record, overwriting any previous one.
	Save(ctx context.Context, s *Session) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// MemoryStore keeps sessions in an in-process map. It is the reference
// implementation used in tests and the fallback when Redis is unreachable.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Load returns a copy of the stored session so callers can mutate freely.
func (m *MemoryStore) Load(ctx context.Context, identity string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[identity]
	if !ok {
		return nil, ErrNotFound
	}
	cp := s
	cp.Path = append([]string(nil), s.Path...)
	return &cp, nil
}

// Save stores a copy of the session.
func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *s
	cp.Path = append([]string(nil), s.Path...)
	m.sessions[s.Identity] = cp
	return nil
}

// Ping always succeeds for the in-memory store.
func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
