// SPDX-License-Identifier: MIT

// Package handlers contains the capability modules of the handler chain:
// one per vertical flow (GST filing, ITR filing, document upload,
// multi-GSTIN management, notification preferences, session resume).
// Chain returns them in their contractual priority order.
package handlers

import (
	"strconv"
	"strings"

	"github.com/taxsetu/waflow/internal/engine"
	"github.com/taxsetu/waflow/internal/facade"
	"github.com/taxsetu/waflow/internal/i18n"
	"github.com/taxsetu/waflow/internal/session"
)

// Chain builds the handler chain in priority order. Order is part of the
// contract: the first handler claiming a state wins.
func Chain(
	validator facade.IdentifierValidator,
	parser facade.DocumentParser,
	tax facade.TaxComputer,
	notifier facade.NotificationScheduler,
) []engine.Handler {
	return []engine.Handler{
		&ResumeHandler{},
		&GSTHandler{Validator: validator, Tax: tax},
		&ITRHandler{Validator: validator, Tax: tax},
		&UploadHandler{Parser: parser},
		&MultiGSTINHandler{Validator: validator},
		&NotifyHandler{Notifier: notifier},
	}
}

// norm canonicalizes user text the way the engine does for matching.
func norm(raw string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(raw)), ".,!?;:'\"()")
}

// isMedia reports whether the event carries an attachment.
func isMedia(ev engine.Event) bool {
	return ev.Type == engine.EventImage || ev.Type == engine.EventDocument || ev.MediaRef != ""
}

// screen renders the prompt for the session's current state.
func screen(s *session.Session) *engine.Response {
	return engine.Text(i18n.T(s.Language, i18n.ScreenKey(s.State)))
}

// enter pushes the current state and moves to next. A full stack rejects
// the move and warns.
func enter(s *session.Session, next session.State) *engine.Response {
	if err := s.Push(s.State); err != nil {
		return engine.Text(
			i18n.T(s.Language, i18n.KeyStackFull),
			i18n.T(s.Language, i18n.ScreenKey(s.State)),
		)
	}
	s.State = next
	return screen(s)
}

// goTo moves to next without touching the stack, for steps inside one
// flow where "9" should unwind the whole flow, not each question.
func goTo(s *session.Session, next session.State) *engine.Response {
	s.State = next
	return screen(s)
}

// backOrMain pops to the previous state, or to the main menu when the
// stack is empty.
func backOrMain(s *session.Session) *engine.Response {
	if prev, ok := s.Pop(); ok {
		s.State = prev
	} else {
		s.State = session.StateMainMenu
	}
	return screen(s)
}

// parseAmount reads a rupee amount: plain digits, commas tolerated,
// "none"/"na" meaning zero.
func parseAmount(text string) (int64, bool) {
	switch text {
	case "none", "na", "nil":
		return 0, true
	}
	cleaned := strings.ReplaceAll(strings.TrimPrefix(text, "₹"), ",", "")
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// claimSet is a convenience for Claims implementations.
type claimSet map[session.State]struct{}

func claims(states ...session.State) claimSet {
	set := make(claimSet, len(states))
	for _, st := range states {
		set[st] = struct{}{}
	}
	return set
}

func (c claimSet) has(st session.State) bool {
	_, ok := c[st]
	return ok
}
