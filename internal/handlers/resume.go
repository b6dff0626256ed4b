// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"strings"

	"github.com/taxsetu/waflow/internal/engine"
	"github.com/taxsetu/waflow/internal/i18n"
	"github.com/taxsetu/waflow/internal/session"
)

// ResumeHandler answers the "welcome back" prompt shown when a session
// idled mid-flow. It must run first in the chain so nothing else can
// claim the resume state.
type ResumeHandler struct{}

func (h *ResumeHandler) Name() string { return "resume" }

func (h *ResumeHandler) Claims(st session.State) bool {
	return st == session.StateResumePrompt
}

func (h *ResumeHandler) Handle(_ context.Context, s *session.Session, ev engine.Event) (*engine.Response, error) {
	text := norm(ev.Text)
	stashed := session.State(s.Data[engine.DataKeyResumeState])

	switch text {
	case "1": // continue where I left off
		delete(s.Data, engine.DataKeyResumeState)
		if !stashed.Known() {
			stashed = session.StateMainMenu
		}
		s.State = stashed
		return screen(s), nil

	case "2": // start the flow over
		delete(s.Data, engine.DataKeyResumeState)
		s.Stack = s.Stack[:0]
		s.State = moduleRoot(stashed)
		return screen(s), nil

	case "3": // main menu
		delete(s.Data, engine.DataKeyResumeState)
		s.Reset()
		return engine.Text(i18n.T(s.Language, i18n.KeyMainMenu)), nil
	}
	return nil, nil
}

// moduleRoot maps a mid-flow state to its vertical's entry screen.
func moduleRoot(st session.State) session.State {
	switch {
	case hasPrefix(st, "GST_"), hasPrefix(st, "ASK_GST"), hasPrefix(st, "NIL_"),
		hasPrefix(st, "WAIT_"), hasPrefix(st, "SMART_"):
		return session.StateGSTMenu
	case hasPrefix(st, "ITR_"):
		return session.StateITRMenu
	case hasPrefix(st, "MULTI_GSTIN"):
		return session.StateMultiGSTINMenu
	case hasPrefix(st, "NOTIF"):
		return session.StateNotificationSettings
	default:
		return session.StateMainMenu
	}
}

func hasPrefix(st session.State, prefix string) bool {
	return strings.HasPrefix(string(st), prefix)
}
