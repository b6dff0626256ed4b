// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/taxsetu/waflow/internal/engine"
	"github.com/taxsetu/waflow/internal/facade"
	"github.com/taxsetu/waflow/internal/i18n"
	"github.com/taxsetu/waflow/internal/session"
)

// Session data keys owned by the ITR guided flow.
const (
	dataPAN         = "pan"
	dataName        = "itr_name"
	dataDOB         = "itr_dob"
	dataSalary      = "itr_salary"
	dataOtherIncome = "itr_other_income"
	data80C         = "itr_80c"
	data80D         = "itr_80d"
	dataTDS         = "itr_tds"
)

// ITRHandler owns the guided income-tax-return flow: PAN capture,
// question-by-question income collection, and the computed result.
type ITRHandler struct {
	Validator facade.IdentifierValidator
	Tax       facade.TaxComputer
}

func (h *ITRHandler) Name() string { return "itr" }

var itrStates = claims(
	session.StateITRMenu,
	session.StateITRFilingOptions,
	session.StateITRAskPAN,
	session.StateITRAskName,
	session.StateITRAskDOB,
	session.StateITRAskSalary,
	session.StateITRAskOtherInc,
	session.StateITRAsk80C,
	session.StateITRAsk80D,
	session.StateITRAskTDS,
	session.StateITRComputing,
	session.StateITRResult,
)

func (h *ITRHandler) Claims(st session.State) bool { return itrStates.has(st) }

func (h *ITRHandler) Handle(ctx context.Context, s *session.Session, ev engine.Event) (*engine.Response, error) {
	text := norm(ev.Text)
	lang := s.Language

	switch s.State {
	case session.StateITRMenu:
		switch text {
		case "1":
			return enter(s, session.StateITRFilingOptions), nil
		case "2":
			return enter(s, session.StateITRDocUploadPrompt), nil
		case "3":
			return engine.Text(i18n.T(lang, i18n.KeyRequestLogged)), nil
		}
		return nil, nil

	case session.StateITRFilingOptions:
		switch text {
		case "1":
			return goTo(s, session.StateITRAskPAN), nil
		case "2":
			return goTo(s, session.StateITRDocUploadPrompt), nil
		}
		return nil, nil

	case session.StateITRAskPAN:
		if text == "" {
			return nil, nil
		}
		if err := h.Validator.ValidatePAN(ctx, text); err != nil {
			if errors.Is(err, facade.ErrRejected) {
				return engine.Text(i18n.T(lang, i18n.KeyITRInvalidPAN)), nil
			}
			return nil, err
		}
		s.Data[dataPAN] = text
		return goTo(s, session.StateITRAskName), nil

	case session.StateITRAskName:
		if text == "" {
			return nil, nil
		}
		s.Data[dataName] = ev.Text
		return goTo(s, session.StateITRAskDOB), nil

	case session.StateITRAskDOB:
		if _, err := time.Parse("02-01-2006", text); err != nil {
			return engine.Text(
				i18n.T(lang, i18n.KeyDidntUnderstand),
				i18n.T(lang, i18n.KeyITRAskDOB),
			), nil
		}
		s.Data[dataDOB] = text
		return goTo(s, session.StateITRAskSalary), nil

	case session.StateITRAskSalary:
		return h.captureAmount(s, text, dataSalary, session.StateITRAskOtherInc)

	case session.StateITRAskOtherInc:
		return h.captureAmount(s, text, dataOtherIncome, session.StateITRAsk80C)

	case session.StateITRAsk80C:
		return h.captureAmount(s, text, data80C, session.StateITRAsk80D)

	case session.StateITRAsk80D:
		return h.captureAmount(s, text, data80D, session.StateITRAskTDS)

	case session.StateITRAskTDS:
		amount, ok := parseAmount(text)
		if !ok {
			return engine.Text(i18n.T(lang, i18n.KeyITRInvalidNumber)), nil
		}
		s.Data[dataTDS] = strconv.FormatInt(amount, 10)
		return h.compute(ctx, s)

	case session.StateITRComputing:
		// A reply racing the computation just re-renders progress.
		return engine.Text(i18n.T(lang, i18n.KeyITRComputing)), nil

	case session.StateITRResult:
		switch text {
		case "1":
			s.State = session.StateITRQueuedReview
			return engine.Text(i18n.T(lang, i18n.KeyITRQueued)), nil
		case "2":
			return goTo(s, session.StateITRAskSalary), nil
		}
		return nil, nil
	}
	return nil, nil
}

func (h *ITRHandler) captureAmount(s *session.Session, text, key string, next session.State) (*engine.Response, error) {
	amount, ok := parseAmount(text)
	if !ok {
		return engine.Text(i18n.T(s.Language, i18n.KeyITRInvalidNumber)), nil
	}
	s.Data[key] = strconv.FormatInt(amount, 10)
	return goTo(s, next), nil
}

func (h *ITRHandler) compute(ctx context.Context, s *session.Session) (*engine.Response, error) {
	in := facade.ITRInput{
		PAN:          s.Data[dataPAN],
		Salary:       dataInt(s, dataSalary),
		OtherIncome:  dataInt(s, dataOtherIncome),
		Deduction80C: dataInt(s, data80C),
		Deduction80D: dataInt(s, data80D),
		TDS:          dataInt(s, dataTDS),
	}
	result, err := h.Tax.ComputeITR(ctx, in)
	if err != nil {
		return nil, err
	}

	s.State = session.StateITRResult
	return engine.Text(
		i18n.T(s.Language, i18n.KeyITRComputing),
		i18n.Tf(s.Language, i18n.KeyITRResult,
			result.TaxableIncome, result.TaxPayable, result.RefundDue),
	), nil
}

func dataInt(s *session.Session, key string) int64 {
	n, _ := strconv.ParseInt(s.Data[key], 10, 64)
	return n
}
