// SPDX-License-Identifier: MIT

// Package session defines the per-user conversation state: the current
// screen, language, bounded navigation stack and flow-scoped data.
package session

import (
	"errors"
	"time"
)

// Language is a supported conversation language.
type Language string

const (
	LangEnglish  Language = "en"
	LangHindi    Language = "hi"
	LangGujarati Language = "gu"
	LangTamil    Language = "ta"
	LangTelugu   Language = "te"
)

// SupportedLanguages lists the languages the message catalog covers,
// in menu order.
var SupportedLanguages = []Language{
	LangEnglish, LangHindi, LangGujarati, LangTamil, LangTelugu,
}

// Supported reports whether l is one of the supported languages.
func (l Language) Supported() bool {
	for _, s := range SupportedLanguages {
		if l == s {
			return true
		}
	}
	return false
}

// MaxStackDepth bounds the navigation stack. Pushing beyond it is
// rejected and the caller is expected to warn the user.
const MaxStackDepth = 8

// ErrStackFull is returned by Push when the navigation stack is at capacity.
var ErrStackFull = errors.New("session: navigation stack full")

// Session is the per-user conversation state. It is mutated exactly once
// per processed inbound event and persisted through a Repository.
type Session struct {
	UserID     string            `json:"user_id"`
	State      State             `json:"state"`
	Language   Language          `json:"lang"`
	Stack      []State           `json:"stack"`
	Data       map[string]string `json:"data"`
	Version    int64             `json:"version"`
	LastActive time.Time         `json:"last_active"`
}

// New creates a fresh session for an unseen user id.
func New(userID string) *Session {
	return &Session{
		UserID:   userID,
		State:    StateMainMenu,
		Language: LangEnglish,
		Stack:    []State{},
		Data:     map[string]string{},
	}
}

// Push records st as a prior state so the user can navigate back to it.
// MAIN_MENU is the implicit stack root and is never pushed. A push onto a
// full stack is rejected with ErrStackFull; the stack is left unchanged.
func (s *Session) Push(st State) error {
	if st == StateMainMenu {
		return nil
	}
	if len(s.Stack) >= MaxStackDepth {
		return ErrStackFull
	}
	s.Stack = append(s.Stack, st)
	return nil
}

// Pop removes and returns the most recent prior state. The second return
// value is false when the stack is empty.
func (s *Session) Pop() (State, bool) {
	if len(s.Stack) == 0 {
		return "", false
	}
	st := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return st, true
}

// StackDepth returns the current navigation stack depth.
func (s *Session) StackDepth() int {
	return len(s.Stack)
}

// Reset clears the navigation stack and returns to the main menu. Flow
// data and language survive; this is the "0" shortcut.
func (s *Session) Reset() {
	s.State = StateMainMenu
	s.Stack = s.Stack[:0]
}

// Wipe is a full session reset: stack, state and flow data are cleared.
// Language survives so the user is not forced back through language
// selection. This is the "restart" shortcut.
func (s *Session) Wipe() {
	s.Reset()
	s.Data = map[string]string{}
}

// Touch updates the idle-expiry timestamp.
func (s *Session) Touch(now time.Time) {
	s.LastActive = now
}
