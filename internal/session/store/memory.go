// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"sync"
	"time"

	"github.com/taxsetu/waflow/internal/session"
)

// MemoryStore is an in-process Repository and Deduper with the same CAS
// semantics as the Redis store. It backs engine tests and local runs
// without a Redis instance. TTLs are checked lazily on access.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	seen     map[string]time.Time
	now      func() time.Time
}

type memoryEntry struct {
	s         session.Session
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]memoryEntry{},
		seen:     map[string]time.Time{},
		now:      time.Now,
	}
}

// SetNow overrides the clock. Used by tests.
func (m *MemoryStore) SetNow(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryStore) Load(_ context.Context, userID string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[userID]
	if !ok || (!e.expiresAt.IsZero() && m.now().After(e.expiresAt)) {
		delete(m.sessions, userID)
		return nil, ErrNotFound
	}
	cp := e.s
	cp.Stack = append([]session.State{}, e.s.Stack...)
	cp.Data = map[string]string{}
	for k, v := range e.s.Data {
		cp.Data[k] = v
	}
	return &cp, nil
}

func (m *MemoryStore) Save(_ context.Context, s *session.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[s.UserID]; ok {
		if e.s.Version != s.Version {
			return ErrVersionConflict
		}
	} else if s.Version != 0 {
		return ErrVersionConflict
	}

	cp := *s
	cp.Version = s.Version + 1
	cp.Stack = append([]session.State{}, s.Stack...)
	cp.Data = map[string]string{}
	for k, v := range s.Data {
		cp.Data[k] = v
	}

	var expires time.Time
	if ttl > 0 {
		expires = m.now().Add(ttl)
	}
	m.sessions[s.UserID] = memoryEntry{s: cp, expiresAt: expires}
	s.Version++
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

func (m *MemoryStore) Seen(_ context.Context, id string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if exp, ok := m.seen[id]; ok && m.now().Before(exp) {
		return true, nil
	}
	m.seen[id] = m.now().Add(ttl)
	return false, nil
}
