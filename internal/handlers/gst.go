// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/taxsetu/waflow/internal/engine"
	"github.com/taxsetu/waflow/internal/facade"
	"github.com/taxsetu/waflow/internal/i18n"
	"github.com/taxsetu/waflow/internal/session"
)

// Session data keys owned by the GST flow.
const (
	dataGSTIN      = engine.DataKeyGSTIN
	dataFilingFreq = "filing_freq"
	dataGSTPeriod  = "gst_period"
	dataNilType    = "nil_type"
)

var periodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// GSTHandler owns GSTIN onboarding, GSTR-3B/GSTR-1 filing, NIL filing
// and the credit check flow.
type GSTHandler struct {
	Validator facade.IdentifierValidator
	Tax       facade.TaxComputer

	// now is a test hook for the current-period shortcuts.
	now func() time.Time
}

func (h *GSTHandler) Name() string { return "gst" }

var gstStates = claims(
	session.StateAskGSTIN,
	session.StateWaitGSTIN,
	session.StateGSTOnboardFreq,
	session.StateGSTMenu,
	session.StateGSTServices,
	session.StateGSTFilingMenu,
	session.StateGSTPeriodMenu,
	session.StateAskGSTPeriod3B,
	session.StateAskGSTPeriod1,
	session.StateGSTFilingConfirm,
	session.StateGSTPaymentPrompt,
	session.StateGSTAnnualMenu,
	session.StateGSTQRMPMenu,
	session.StateNilFilingMenu,
	session.StateNilFilingConfirm,
	session.StateNilFilingNoGSTIN,
	session.StateCreditCheckMenu,
	session.StateCreditCheckRun,
)

func (h *GSTHandler) Claims(st session.State) bool { return gstStates.has(st) }

func (h *GSTHandler) Handle(ctx context.Context, s *session.Session, ev engine.Event) (*engine.Response, error) {
	text := norm(ev.Text)
	lang := s.Language

	switch s.State {
	case session.StateAskGSTIN, session.StateWaitGSTIN, session.StateNilFilingNoGSTIN:
		return h.captureGSTIN(ctx, s, text)

	case session.StateGSTOnboardFreq:
		switch text {
		case "1":
			s.Data[dataFilingFreq] = "monthly"
			return goTo(s, session.StateGSTMenu), nil
		case "2":
			s.Data[dataFilingFreq] = "quarterly"
			return goTo(s, session.StateGSTMenu), nil
		}
		return nil, nil

	case session.StateGSTMenu:
		switch text {
		case "1":
			return enter(s, session.StateGSTFilingMenu), nil
		case "2":
			return enter(s, session.StateAskGSTPeriod1), nil
		case "3":
			return enter(s, session.StateNilFilingMenu), nil
		case "4":
			return enter(s, session.StateGSTUploadMenu), nil
		case "5":
			return enter(s, session.StateCreditCheckMenu), nil
		case "6":
			return enter(s, session.StateGSTAnnualMenu), nil
		}
		return nil, nil

	case session.StateGSTServices:
		switch text {
		case "1":
			return enter(s, session.StateGSTFilingMenu), nil
		case "2":
			return enter(s, session.StateGSTPaymentPrompt), nil
		case "3":
			return enter(s, session.StateEInvoiceMenu), nil
		case "4":
			return enter(s, session.StateEWayBillMenu), nil
		}
		return nil, nil

	case session.StateGSTFilingMenu:
		switch text {
		case "1":
			return enter(s, session.StateGSTPeriodMenu), nil
		case "2":
			return enter(s, session.StateAskGSTPeriod1), nil
		}
		return nil, nil

	case session.StateGSTPeriodMenu:
		switch text {
		case "1":
			return h.summarize(ctx, s, h.clock().Format("2006-01"))
		case "2":
			return h.summarize(ctx, s, h.clock().AddDate(0, -1, 0).Format("2006-01"))
		case "3":
			return goTo(s, session.StateAskGSTPeriod3B), nil
		}
		return nil, nil

	case session.StateAskGSTPeriod3B, session.StateAskGSTPeriod1:
		if !periodRe.MatchString(text) {
			return engine.Text(i18n.T(lang, i18n.KeyInvalidPeriod)), nil
		}
		return h.summarize(ctx, s, text)

	case session.StateGSTFilingConfirm:
		switch text {
		case "1", "yes", "y", "haan", "confirm", "ok":
			s.State = session.StateGSTQueuedReview
			return engine.Text(i18n.T(lang, i18n.KeyGSTQueued)), nil
		case "2":
			return goTo(s, session.StateAskGSTPeriod3B), nil
		case "no", "n", "cancel", "nahi":
			return backOrMain(s), nil
		}
		return nil, nil

	case session.StateGSTPaymentPrompt:
		switch text {
		case "1":
			resp := engine.Text(i18n.T(lang, i18n.KeyRequestLogged))
			resp.Messages = append(resp.Messages, backOrMain(s).Messages...)
			return resp, nil
		case "2":
			return backOrMain(s), nil
		}
		return nil, nil

	case session.StateGSTAnnualMenu, session.StateGSTQRMPMenu:
		switch text {
		case "1", "2":
			return engine.Text(i18n.T(lang, i18n.KeyRequestLogged)), nil
		}
		return nil, nil

	case session.StateCreditCheckMenu:
		switch text {
		case "1":
			s.State = session.StateCreditCheckRun
			return engine.Text(i18n.T(lang, i18n.KeyCreditCheckRun)), nil
		case "2":
			return engine.Text(i18n.T(lang, i18n.KeyRequestLogged)), nil
		}
		return nil, nil

	case session.StateCreditCheckRun:
		return backOrMain(s), nil

	case session.StateNilFilingMenu:
		switch text {
		case "1":
			s.Data[dataNilType] = "gstr3b"
			return goTo(s, session.StateNilFilingConfirm), nil
		case "2":
			s.Data[dataNilType] = "gstr1"
			return goTo(s, session.StateNilFilingConfirm), nil
		}
		return nil, nil

	case session.StateNilFilingConfirm:
		switch text {
		case "1", "yes", "y", "haan", "confirm", "ok":
			delete(s.Data, dataNilType)
			resp := engine.Text(i18n.T(lang, i18n.KeyNilFilingDone))
			resp.Messages = append(resp.Messages, backOrMain(s).Messages...)
			return resp, nil
		case "2", "no", "n", "cancel", "nahi":
			delete(s.Data, dataNilType)
			return backOrMain(s), nil
		}
		return nil, nil
	}
	return nil, nil
}

func (h *GSTHandler) clock() time.Time {
	if h.now != nil {
		return h.now()
	}
	return time.Now()
}

// captureGSTIN validates and registers the sent GSTIN, then continues to
// onboarding or back into the NIL flow depending on where it was asked.
func (h *GSTHandler) captureGSTIN(ctx context.Context, s *session.Session, text string) (*engine.Response, error) {
	if text == "" {
		return nil, nil
	}
	info, err := h.Validator.ValidateGSTIN(ctx, text)
	if err != nil {
		if errors.Is(err, facade.ErrRejected) {
			return engine.Text(i18n.T(s.Language, i18n.KeyGSTINInvalid)), nil
		}
		return nil, err
	}

	s.Data[dataGSTIN] = info.GSTIN
	next := session.StateGSTOnboardFreq
	if s.State == session.StateNilFilingNoGSTIN {
		next = session.StateNilFilingMenu
	}
	s.State = next
	return engine.Text(
		i18n.Tf(s.Language, i18n.KeyGSTINAccepted, info.GSTIN),
		i18n.T(s.Language, i18n.ScreenKey(next)),
	), nil
}

// summarize fetches the GSTR-3B summary for period and moves to the
// filing confirmation.
func (h *GSTHandler) summarize(ctx context.Context, s *session.Session, period string) (*engine.Response, error) {
	sum, err := h.Tax.GSTR3BSummary(ctx, s.Data[dataGSTIN], period)
	if err != nil {
		if errors.Is(err, facade.ErrRejected) {
			return engine.Text(i18n.T(s.Language, i18n.KeyInvalidPeriod)), nil
		}
		return nil, err
	}

	s.Data[dataGSTPeriod] = period
	s.State = session.StateGSTFilingConfirm
	return engine.Text(i18n.Tf(s.Language, i18n.KeyGSTSummary,
		sum.Period, sum.OutwardTax, sum.ITC, sum.NetPayable)), nil
}
