// SPDX-License-Identifier: MIT

package engine

import (
	"github.com/taxsetu/waflow/internal/i18n"
	"github.com/taxsetu/waflow/internal/session"
)

// Command is a reserved universal shortcut recognized before any handler.
type Command string

const (
	CmdReset   Command = "0"
	CmdBack    Command = "9"
	CmdNil     Command = "nil"
	CmdHelp    Command = "help"
	CmdRestart Command = "restart"
	CmdCA      Command = "ca"
)

// matchCommand recognizes the reserved tokens, case-insensitively and
// trimmed of punctuation. It never looks at session state.
func matchCommand(raw string) (Command, bool) {
	switch normalize(raw) {
	case "0":
		return CmdReset, true
	case "9":
		return CmdBack, true
	case "nil":
		return CmdNil, true
	case "help", "?":
		return CmdHelp, true
	case "restart":
		return CmdRestart, true
	case "ca", "talk to ca":
		return CmdCA, true
	}
	return "", false
}

// DataKeyCAHandoff is set in Session.Data when the user asks for a CA.
const DataKeyCAHandoff = "ca_handoff"

// applyCommand executes a reserved command against the session and
// renders the reply. CmdHelp is the one command that mutates nothing; the
// caller must skip the session save for it.
func applyCommand(cmd Command, s *session.Session) *Response {
	lang := s.Language
	switch cmd {
	case CmdReset:
		s.Reset()
		return Text(i18n.T(lang, i18n.KeyMainMenu))

	case CmdBack:
		if prev, ok := s.Pop(); ok {
			s.State = prev
			return Text(i18n.T(lang, i18n.ScreenKey(prev)))
		}
		if s.State == session.StateMainMenu {
			// Already at the root: nothing to unwind.
			return Text(
				i18n.T(lang, i18n.KeyNothingToGoBack),
				i18n.T(lang, i18n.KeyMainMenu),
			)
		}
		// Empty stack mid-flow still goes somewhere sensible.
		s.State = session.StateMainMenu
		return Text(i18n.T(lang, i18n.KeyMainMenu))

	case CmdNil:
		target := session.StateNilFilingMenu
		if s.Data[DataKeyGSTIN] == "" {
			target = session.StateNilFilingNoGSTIN
		}
		if s.State == target {
			// Already on the NIL screen: re-render without stacking a
			// return point onto the screen itself.
			return Text(i18n.T(lang, i18n.ScreenKey(target)))
		}
		if err := s.Push(s.State); err != nil {
			return Text(
				i18n.T(lang, i18n.KeyStackFull),
				i18n.T(lang, i18n.ScreenKey(s.State)),
			)
		}
		s.State = target
		return Text(i18n.T(lang, i18n.ScreenKey(target)))

	case CmdHelp:
		return Text(i18n.T(lang, i18n.KeyHelp))

	case CmdRestart:
		s.Wipe()
		return Text(
			i18n.T(lang, i18n.KeyRestartDone),
			i18n.T(lang, i18n.KeyMainMenu),
		)

	case CmdCA:
		s.Data[DataKeyCAHandoff] = "requested"
		return Text(i18n.T(lang, i18n.KeyCAHandoff))
	}
	return nil
}
