// SPDX-License-Identifier: MIT

package engine

import "sync"

// userLocks serializes event processing per user id while letting
// different users proceed fully in parallel. Entries are reference
// counted and removed once the last holder releases.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: map[string]*userLock{}}
}

// acquire blocks until the caller holds the lock for id.
func (ul *userLocks) acquire(id string) {
	ul.mu.Lock()
	l := ul.locks[id]
	if l == nil {
		l = &userLock{}
		ul.locks[id] = l
	}
	l.refs++
	ul.mu.Unlock()

	l.mu.Lock()
}

// release drops the caller's hold and frees the entry when unused.
func (ul *userLocks) release(id string) {
	ul.mu.Lock()
	l := ul.locks[id]
	l.refs--
	if l.refs == 0 {
		delete(ul.locks, id)
	}
	ul.mu.Unlock()

	l.mu.Unlock()
}
