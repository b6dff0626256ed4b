// SPDX-License-Identifier: MIT

// Package store persists sessions in a TTL-backed key/value store with an
// optimistic version token, so concurrent webhook deliveries for the same
// user are detected and retried rather than silently racing.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/taxsetu/waflow/internal/session"
)

var (
	// ErrNotFound is returned by Load when no session exists for the user.
	ErrNotFound = errors.New("store: session not found")

	// ErrVersionConflict is returned by Save when the stored session has
	// moved past the version the caller loaded.
	ErrVersionConflict = errors.New("store: session version conflict")
)

// Repository loads, saves and deletes sessions by user id.
//
// Save performs a compare-and-swap on Session.Version: it succeeds only if
// the stored version still equals the version the caller loaded, and bumps
// the in-memory Version on success.
type Repository interface {
	Load(ctx context.Context, userID string) (*session.Session, error)
	Save(ctx context.Context, s *session.Session, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}

// Deduper records inbound gateway message ids so redelivered events are
// processed at most once.
type Deduper interface {
	// Seen marks id as processed and reports whether it had already been
	// marked within the dedupe window.
	Seen(ctx context.Context, id string, ttl time.Duration) (bool, error)
}
