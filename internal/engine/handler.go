// SPDX-License-Identifier: MIT

package engine

import (
	"context"

	"github.com/taxsetu/waflow/internal/session"
)

// Handler owns a subset of conversation states. Handle may return a nil
// Response to pass: it claims the state but declines this specific input,
// letting the fallback transition table deal with it.
type Handler interface {
	Name() string
	Claims(st session.State) bool
	Handle(ctx context.Context, s *session.Session, ev Event) (*Response, error)
}

// Registry is the fixed, ordered handler chain. Order is part of the
// contract: the first handler claiming the session's state wins.
type Registry struct {
	handlers []Handler
}

// NewRegistry builds a registry from handlers in priority order.
func NewRegistry(handlers ...Handler) *Registry {
	return &Registry{handlers: handlers}
}

// Dispatch gives the event to the first handler claiming the current
// state. It returns the claiming handler's name for logs, a nil Response
// when no handler claimed or the claimant passed, and the handler's error
// unchanged.
func (r *Registry) Dispatch(ctx context.Context, s *session.Session, ev Event) (string, *Response, error) {
	for _, h := range r.handlers {
		if !h.Claims(s.State) {
			continue
		}
		resp, err := h.Handle(ctx, s, ev)
		return h.Name(), resp, err
	}
	return "", nil, nil
}
