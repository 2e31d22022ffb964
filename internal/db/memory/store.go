// Package memory is an in-process db.Store used when no Redis is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/cohesion/internal/db"
)

var _ db.Store = (*Store)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Store keeps values in a map with lazy expiry.
type Store struct {
	mu     sync.RWMutex
	items  map[string]entry
	now    func() time.Time
	closed bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]entry), now: time.Now}
}

// Ping fails only after Close.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &db.Error{Op: db.OpPing, Err: db.ErrClosed}
	}
	return nil
}

// WaitForReady returns immediately; the store is always ready.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Close drops all values and rejects further calls.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]entry)
	s.closed = true
}

// Get returns a copy of the stored value.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.items[key]
	closed := s.closed
	s.mu.RUnlock()

	if closed {
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrClosed}
	}
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, db.ErrKeyNotFound
	}
	return append([]byte(nil), e.value...), nil
}

// SetWithTTL stores a copy of value. A non-positive ttl never expires.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &db.Error{Op: db.OpSet, Err: db.ErrClosed}
	}
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.items[key] = e
	return nil
}

// Del removes a key.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &db.Error{Op: db.OpDel, Err: db.ErrClosed}
	}
	delete(s.items, key)
	return nil
}

// Len returns the number of stored keys, including expired ones not yet evicted.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
