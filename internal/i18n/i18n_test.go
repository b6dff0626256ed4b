// SPDX-License-Identifier: MIT

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taxsetu/waflow/internal/session"
)

func TestTFallsBackToEnglish(t *testing.T) {
	// Tamil has no entry for the settings screen.
	got := T(session.LangTamil, KeySettingsMenu)
	assert.Equal(t, T(session.LangEnglish, KeySettingsMenu), got)
}

func TestTUnknownKeyReturnsKey(t *testing.T) {
	assert.Equal(t, "NO_SUCH_KEY", T(session.LangEnglish, Key("NO_SUCH_KEY")))
}

func TestTHindi(t *testing.T) {
	got := T(session.LangHindi, KeyMainMenu)
	assert.NotEqual(t, T(session.LangEnglish, KeyMainMenu), got)
	assert.Contains(t, got, "GST")
}

func TestTf(t *testing.T) {
	got := Tf(session.LangEnglish, KeyGSTINAccepted, "27AAPFU0939F1ZV")
	assert.Contains(t, got, "27AAPFU0939F1ZV")
}

func TestEnglishCatalogComplete(t *testing.T) {
	for key, byLang := range catalog {
		_, ok := byLang[session.LangEnglish]
		assert.True(t, ok, "missing English text for %s", key)
	}
}

func TestEveryStateHasAScreen(t *testing.T) {
	for _, st := range session.KnownStates() {
		key := ScreenKey(st)
		msg := T(session.LangEnglish, key)
		assert.NotEmpty(t, msg, "no prompt for state %s", st)
	}
}

func TestMatchTag(t *testing.T) {
	assert.Equal(t, session.LangHindi, MatchTag("hi-IN"))
	assert.Equal(t, session.LangGujarati, MatchTag("gu"))
	assert.Equal(t, session.LangEnglish, MatchTag("en-US"))
	assert.Equal(t, session.LangEnglish, MatchTag("zz-bogus"))
	assert.Equal(t, session.LangEnglish, MatchTag(""))
}
