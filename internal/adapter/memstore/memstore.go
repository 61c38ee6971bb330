package memstore

import (
	"context"
	"sync"

	"loan-portal/internal/domain/session"
)

// Backend keeps session slots in process memory. Sessions are lost on
// restart; meant for development and tests.
type Backend struct {
	mu    sync.RWMutex
	slots map[string]map[string]string
}

func NewBackend() *Backend { return &Backend{slots: map[string]map[string]string{}} }

func (b *Backend) Scope(sessionID string) session.Store {
	return &Store{b: b, sid: sessionID}
}

// Store is one session's view of a Backend.
type Store struct {
	b   *Backend
	sid string
}

// NewStore returns a standalone single-session store.
func NewStore() *Store { return &Store{b: NewBackend()} }

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	v, ok := s.b.slots[s.sid][key]
	if !ok {
		return "", session.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	m, ok := s.b.slots[s.sid]
	if !ok {
		m = map[string]string{}
		s.b.slots[s.sid] = m
	}
	m[key] = value
	return nil
}

func (s *Store) Clear(_ context.Context, keys ...string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	m := s.b.slots[s.sid]
	for _, k := range keys {
		delete(m, k)
	}
	if len(m) == 0 {
		delete(s.b.slots, s.sid)
	}
	return nil
}
