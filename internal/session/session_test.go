// SPDX-License-Identifier: MIT

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	s := New("919876543210")

	assert.Equal(t, "919876543210", s.UserID)
	assert.Equal(t, StateMainMenu, s.State)
	assert.Equal(t, LangEnglish, s.Language)
	assert.Empty(t, s.Stack)
	assert.Empty(t, s.Data)
	assert.Zero(t, s.Version)
}

func TestPushPop(t *testing.T) {
	s := New("u1")

	require.NoError(t, s.Push(StateGSTMenu))
	require.NoError(t, s.Push(StateGSTFilingMenu))
	assert.Equal(t, 2, s.StackDepth())

	st, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, StateGSTFilingMenu, st)

	st, ok = s.Pop()
	require.True(t, ok)
	assert.Equal(t, StateGSTMenu, st)

	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestPushMainMenuIsNoop(t *testing.T) {
	s := New("u1")
	require.NoError(t, s.Push(StateMainMenu))
	assert.Zero(t, s.StackDepth())
}

func TestPushOverflowRejected(t *testing.T) {
	s := New("u1")
	for i := 0; i < MaxStackDepth; i++ {
		require.NoError(t, s.Push(StateGSTMenu))
	}

	err := s.Push(StateITRMenu)
	assert.ErrorIs(t, err, ErrStackFull)
	// Rejected push leaves the stack untouched.
	assert.Equal(t, MaxStackDepth, s.StackDepth())
	top, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, StateGSTMenu, top)
}

func TestStackDepthInvariant(t *testing.T) {
	s := New("u1")
	for i := 0; i < MaxStackDepth*3; i++ {
		_ = s.Push(StateITRAskPAN)
		assert.LessOrEqual(t, s.StackDepth(), MaxStackDepth)
	}
}

func TestResetKeepsDataAndLanguage(t *testing.T) {
	s := New("u1")
	s.Language = LangHindi
	s.Data["gstin"] = "27AAPFU0939F1ZV"
	_ = s.Push(StateGSTMenu)
	s.State = StateAskGSTPeriod3B

	s.Reset()

	assert.Equal(t, StateMainMenu, s.State)
	assert.Empty(t, s.Stack)
	assert.Equal(t, LangHindi, s.Language)
	assert.Equal(t, "27AAPFU0939F1ZV", s.Data["gstin"])
}

func TestWipeClearsData(t *testing.T) {
	s := New("u1")
	s.Language = LangGujarati
	s.Data["pan"] = "ABCDE1234F"
	_ = s.Push(StateITRMenu)
	s.State = StateITRAskPAN

	s.Wipe()

	assert.Equal(t, StateMainMenu, s.State)
	assert.Empty(t, s.Stack)
	assert.Empty(t, s.Data)
	assert.Equal(t, LangGujarati, s.Language)
}

func TestTouch(t *testing.T) {
	s := New("u1")
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.Touch(now)
	assert.Equal(t, now, s.LastActive)
}

func TestStateKnown(t *testing.T) {
	assert.True(t, StateMainMenu.Known())
	assert.True(t, StateNilFilingConfirm.Known())
	assert.False(t, State("BOGUS").Known())
}

func TestKnownStatesCount(t *testing.T) {
	// The conversation graph is roughly fifty states rooted at MAIN_MENU.
	assert.GreaterOrEqual(t, len(KnownStates()), 50)
}

func TestLanguageSupported(t *testing.T) {
	assert.True(t, LangHindi.Supported())
	assert.False(t, Language("fr").Supported())
}
