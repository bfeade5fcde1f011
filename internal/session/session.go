// Package session holds the access token for the current user and keeps it
// in durable storage between runs. Persistence is best-effort: when storage
// is unavailable the session survives only in memory.
package session

import (
	"sync"
)

// Store is the session state. It is constructed once at process start and
// shared by reference; it is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	token   string
	storage TokenStorage
}

// NewStore creates a session store backed by storage. A previously persisted
// token is restored when present; any storage failure is treated as "no
// token". Storage may be nil for a memory-only session.
func NewStore(storage TokenStorage) *Store {
	s := &Store{storage: storage}
	if storage != nil {
		if token, err := storage.Load(); err == nil {
			s.token = token
		}
	}
	return s
}

// Token returns the current access token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// SetToken replaces the current token and persists it. An empty token deletes
// the persisted value. Persistence failures are never surfaced.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	storage := s.storage
	s.mu.Unlock()

	if storage == nil {
		return
	}
	if token != "" {
		_ = storage.Save(token)
	} else {
		_ = storage.Delete()
	}
}

// Clear logs the session out. Calling it while already unauthenticated is a
// no-op.
func (s *Store) Clear() {
	s.SetToken("")
}

// HandleUnauthorized implements api.UnauthorizedObserver: any 401 from the
// server invalidates the session.
func (s *Store) HandleUnauthorized() {
	s.Clear()
}
