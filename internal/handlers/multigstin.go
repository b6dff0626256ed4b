// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/taxsetu/waflow/internal/engine"
	"github.com/taxsetu/waflow/internal/facade"
	"github.com/taxsetu/waflow/internal/i18n"
	"github.com/taxsetu/waflow/internal/session"
)

// dataGSTINList holds the registered GSTINs as a comma-separated list;
// the active one is in engine.DataKeyGSTIN.
const dataGSTINList = "gstins"

// MultiGSTINHandler manages the user's registered GSTINs.
type MultiGSTINHandler struct {
	Validator facade.IdentifierValidator
}

func (h *MultiGSTINHandler) Name() string { return "multi_gstin" }

var multiGSTINStates = claims(
	session.StateMultiGSTINMenu,
	session.StateMultiGSTINAdd,
	session.StateMultiGSTINSummary,
)

func (h *MultiGSTINHandler) Claims(st session.State) bool { return multiGSTINStates.has(st) }

func (h *MultiGSTINHandler) Handle(ctx context.Context, s *session.Session, ev engine.Event) (*engine.Response, error) {
	text := norm(ev.Text)

	switch s.State {
	case session.StateMultiGSTINMenu:
		switch text {
		case "1", "3":
			s.State = session.StateMultiGSTINSummary
			return h.summary(s), nil
		case "2":
			return goTo(s, session.StateMultiGSTINAdd), nil
		}
		return nil, nil

	case session.StateMultiGSTINAdd:
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
		addGSTIN(s, info.GSTIN)
		s.State = session.StateMultiGSTINMenu
		return engine.Text(
			i18n.Tf(s.Language, i18n.KeyMultiGSTINAdded, info.GSTIN),
			i18n.T(s.Language, i18n.KeyMultiGSTINMenu),
		), nil

	case session.StateMultiGSTINSummary:
		s.State = session.StateMultiGSTINMenu
		return screen(s), nil
	}
	return nil, nil
}

func (h *MultiGSTINHandler) summary(s *session.Session) *engine.Response {
	gstins := listGSTINs(s)
	if len(gstins) == 0 {
		return engine.Text(i18n.Tf(s.Language, i18n.KeyMultiGSTINSummary, "(none registered yet)"))
	}

	var b strings.Builder
	active := s.Data[engine.DataKeyGSTIN]
	for i, g := range gstins {
		b.WriteString(strings.TrimSpace(g))
		if g == active {
			b.WriteString(" (active)")
		}
		if i < len(gstins)-1 {
			b.WriteByte('\n')
		}
	}
	return engine.Text(i18n.Tf(s.Language, i18n.KeyMultiGSTINSummary, b.String()))
}

func listGSTINs(s *session.Session) []string {
	raw := s.Data[dataGSTINList]
	if raw == "" {
		if active := s.Data[engine.DataKeyGSTIN]; active != "" {
			return []string{active}
		}
		return nil
	}
	return strings.Split(raw, ",")
}

func addGSTIN(s *session.Session, gstin string) {
	for _, g := range listGSTINs(s) {
		if g == gstin {
			return
		}
	}
	existing := listGSTINs(s)
	existing = append(existing, gstin)
	s.Data[dataGSTINList] = strings.Join(existing, ",")
	if s.Data[engine.DataKeyGSTIN] == "" {
		s.Data[engine.DataKeyGSTIN] = gstin
	}
}
