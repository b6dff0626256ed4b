// SPDX-License-Identifier: MIT

package engine

import "strings"

// inputClass is the coarse classification of an inbound event used to key
// the fallback transition table.
type inputClass int

const (
	classFreeText inputClass = iota
	classNumeric
	classConfirm
	classMedia
)

func (c inputClass) String() string {
	switch c {
	case classNumeric:
		return "numeric"
	case classConfirm:
		return "confirm"
	case classMedia:
		return "media"
	default:
		return "free_text"
	}
}

var confirmTokens = map[string]bool{
	"yes": true, "y": true, "ok": true, "okay": true, "confirm": true,
	"haan": true, "ha": true,
	"no": true, "n": true, "cancel": true, "nahi": true,
}

// isAffirmative reports whether a confirm token means yes.
func isAffirmative(token string) bool {
	switch token {
	case "yes", "y", "ok", "okay", "confirm", "haan", "ha":
		return true
	}
	return false
}

// normalize lowercases and strips surrounding whitespace and punctuation,
// the same canonical form the command interceptor matches on.
func normalize(raw string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(raw)), ".,!?;:'\"()")
}

// classify derives the input classification and the normalized text.
func classify(ev Event) (inputClass, string) {
	if ev.Type == EventImage || ev.Type == EventDocument || ev.MediaRef != "" {
		return classMedia, normalize(ev.Text)
	}
	text := normalize(ev.Text)
	if text != "" && isAllDigits(text) {
		return classNumeric, text
	}
	if confirmTokens[text] {
		return classConfirm, text
	}
	return classFreeText, text
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
