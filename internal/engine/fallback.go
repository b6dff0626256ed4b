// SPDX-License-Identifier: MIT

package engine

import (
	"github.com/taxsetu/waflow/internal/i18n"
	"github.com/taxsetu/waflow/internal/session"
)

// Session data keys shared between the fallback table and the handlers.
const (
	DataKeyGSTIN         = "gstin"
	DataKeyPendingModule = "pending_module"
	DataKeyResumeState   = "resume_state"
)

// transitionFunc mutates the session for one (state, classification) pair
// and renders the reply. text is the normalized input.
type transitionFunc func(s *session.Session, text string) *Response

type transitionKey struct {
	state session.State
	class inputClass
}

// dispatchFallback is the table-driven last resort for states no handler
// claimed (or whose handler passed). An unmatched (state, input) pair
// re-renders the current prompt behind a "didn't understand" notice and
// leaves the state untouched — no event is silently dropped.
func dispatchFallback(s *session.Session, ev Event) *Response {
	if !s.State.Known() {
		// A session deserialized with a retired state routes home rather
		// than wedging the user.
		s.Reset()
		return Text(i18n.T(s.Language, i18n.KeyMainMenu))
	}

	class, text := classify(ev)
	if fn, ok := fallbackTable[transitionKey{s.State, class}]; ok {
		if resp := fn(s, text); resp != nil {
			return resp
		}
	}
	return Text(
		i18n.T(s.Language, i18n.KeyDidntUnderstand),
		i18n.T(s.Language, i18n.ScreenKey(s.State)),
	)
}

var fallbackTable map[transitionKey]transitionFunc

func init() {
	fallbackTable = map[transitionKey]transitionFunc{
		{session.StateMainMenu, classNumeric}: mainMenuChoice,

		{session.StateLangMenu, classNumeric}: langMenuChoice,

		{session.StateSettingsMenu, classNumeric}: settingsChoice,

		{session.StateConnectCAMenu, classNumeric}: connectCAChoice,

		{session.StateTaxQA, classFreeText}: taxQAAnswer,

		{session.StateConfirmSwitch, classNumeric}: confirmSwitchChoice,
		{session.StateConfirmSwitch, classConfirm}: confirmSwitchToken,

		{session.StateConfirmExpired, classNumeric}:  routeHome,
		{session.StateConfirmExpired, classFreeText}: routeHome,

		{session.StateGSTQueuedReview, classNumeric}: routeHome,
		{session.StateITRQueuedReview, classNumeric}: routeHome,
		{session.StateGSTFilingError, classNumeric}:  routeHome,

		{session.StateRefundMenu, classNumeric}:   serviceRequest,
		{session.StateNoticeMenu, classNumeric}:   serviceRequest,
		{session.StateEInvoiceMenu, classNumeric}: serviceRequest,
		{session.StateEWayBillMenu, classNumeric}: serviceRequest,
	}
}

// enter pushes the current state and moves to next, rendering its prompt.
// A full stack rejects the move and warns instead.
func enter(s *session.Session, next session.State) *Response {
	if err := s.Push(s.State); err != nil {
		return Text(
			i18n.T(s.Language, i18n.KeyStackFull),
			i18n.T(s.Language, i18n.ScreenKey(s.State)),
		)
	}
	s.State = next
	return Text(i18n.T(s.Language, i18n.ScreenKey(next)))
}

func mainMenuChoice(s *session.Session, text string) *Response {
	switch text {
	case "1":
		if s.Data[DataKeyGSTIN] == "" {
			return enter(s, session.StateAskGSTIN)
		}
		return enter(s, session.StateGSTMenu)
	case "2":
		return enter(s, session.StateITRMenu)
	case "3":
		return enter(s, session.StateGSTUploadMenu)
	case "4":
		return enter(s, session.StateMultiGSTINMenu)
	case "5":
		return enter(s, session.StateNotificationSettings)
	case "6":
		return enter(s, session.StateSettingsMenu)
	}
	return invalidChoice(s)
}

func langMenuChoice(s *session.Session, text string) *Response {
	if len(text) != 1 {
		return invalidChoice(s)
	}
	idx := int(text[0] - '1')
	if idx < 0 || idx >= len(session.SupportedLanguages) {
		return invalidChoice(s)
	}
	s.Language = session.SupportedLanguages[idx]

	// Return to wherever language selection was entered from.
	if prev, ok := s.Pop(); ok {
		s.State = prev
	} else {
		s.State = session.StateMainMenu
	}
	return Text(
		i18n.T(s.Language, i18n.KeyLangSet),
		i18n.T(s.Language, i18n.ScreenKey(s.State)),
	)
}

func settingsChoice(s *session.Session, text string) *Response {
	switch text {
	case "1":
		return enter(s, session.StateLangMenu)
	case "2":
		return enter(s, session.StateNotificationSettings)
	case "3":
		return enter(s, session.StateConnectCAMenu)
	}
	return invalidChoice(s)
}

func connectCAChoice(s *session.Session, text string) *Response {
	switch text {
	case "1", "2":
		s.Data[DataKeyCAHandoff] = "requested"
		return Text(i18n.T(s.Language, i18n.KeyCAHandoff))
	}
	return invalidChoice(s)
}

func taxQAAnswer(s *session.Session, text string) *Response {
	return Text(i18n.Tf(s.Language, i18n.KeyTaxQAAnswer, text))
}

func confirmSwitchChoice(s *session.Session, text string) *Response {
	switch text {
	case "1":
		return applyModuleSwitch(s)
	case "2":
		return abandonModuleSwitch(s)
	}
	return invalidChoice(s)
}

func confirmSwitchToken(s *session.Session, text string) *Response {
	if isAffirmative(text) {
		return applyModuleSwitch(s)
	}
	return abandonModuleSwitch(s)
}

func applyModuleSwitch(s *session.Session) *Response {
	next := session.State(s.Data[DataKeyPendingModule])
	delete(s.Data, DataKeyPendingModule)
	if !next.Known() {
		next = session.StateMainMenu
	}
	s.State = next
	s.Stack = s.Stack[:0]
	return Text(i18n.T(s.Language, i18n.ScreenKey(next)))
}

func abandonModuleSwitch(s *session.Session) *Response {
	delete(s.Data, DataKeyPendingModule)
	if prev, ok := s.Pop(); ok {
		s.State = prev
	} else {
		s.State = session.StateMainMenu
	}
	return Text(i18n.T(s.Language, i18n.ScreenKey(s.State)))
}

func routeHome(s *session.Session, _ string) *Response {
	s.Reset()
	return Text(i18n.T(s.Language, i18n.KeyMainMenu))
}

func serviceRequest(s *session.Session, text string) *Response {
	switch text {
	case "1", "2":
		return Text(i18n.T(s.Language, i18n.KeyRequestLogged))
	}
	return invalidChoice(s)
}

func invalidChoice(s *session.Session) *Response {
	return Text(
		i18n.T(s.Language, i18n.KeyInvalidChoice),
		i18n.T(s.Language, i18n.ScreenKey(s.State)),
	)
}
