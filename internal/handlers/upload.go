// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"errors"

	"github.com/taxsetu/waflow/internal/engine"
	"github.com/taxsetu/waflow/internal/facade"
	"github.com/taxsetu/waflow/internal/i18n"
	"github.com/taxsetu/waflow/internal/session"
)

const dataDocType = "doc_type"

var docTypeLabels = map[string]string{
	"1": "Form 16",
	"2": "interest certificate",
	"3": "capital gains statement",
	"4": "tax document",
}

// UploadHandler owns every document-upload flow: GST invoices (sales,
// purchase, smart) and ITR documents.
type UploadHandler struct {
	Parser facade.DocumentParser
}

func (h *UploadHandler) Name() string { return "upload" }

var uploadStates = claims(
	session.StateWaitInvoiceUpload,
	session.StateGSTUploadMenu,
	session.StateUploadPurchase,
	session.StateSmartUpload,
	session.StateITRDocUploadPrompt,
	session.StateITRDocTypeMenu,
	session.StateITRDocDetected,
)

func (h *UploadHandler) Claims(st session.State) bool { return uploadStates.has(st) }

func (h *UploadHandler) Handle(ctx context.Context, s *session.Session, ev engine.Event) (*engine.Response, error) {
	text := norm(ev.Text)
	lang := s.Language

	switch s.State {
	case session.StateGSTUploadMenu:
		switch text {
		case "1":
			return goTo(s, session.StateWaitInvoiceUpload), nil
		case "2":
			return goTo(s, session.StateUploadPurchase), nil
		case "3":
			return goTo(s, session.StateSmartUpload), nil
		}
		return nil, nil

	case session.StateWaitInvoiceUpload, session.StateUploadPurchase, session.StateSmartUpload:
		if !isMedia(ev) {
			return engine.Text(i18n.T(lang, i18n.KeyExpectingMedia)), nil
		}
		inv, err := h.Parser.ParseInvoice(ctx, ev.MediaRef)
		if err != nil {
			if errors.Is(err, facade.ErrRejected) {
				return engine.Text(i18n.T(lang, i18n.KeyUploadFailed)), nil
			}
			return nil, err
		}
		// Stay put so the user can upload the next invoice straight away.
		return engine.Text(i18n.Tf(lang, i18n.KeyUploadParsed,
			inv.InvoiceNo, inv.Seller, inv.Amount)), nil

	case session.StateITRDocUploadPrompt:
		if !isMedia(ev) {
			return engine.Text(i18n.T(lang, i18n.KeyExpectingMedia)), nil
		}
		return goTo(s, session.StateITRDocTypeMenu), nil

	case session.StateITRDocTypeMenu:
		label, ok := docTypeLabels[text]
		if !ok {
			return nil, nil
		}
		s.Data[dataDocType] = label
		s.State = session.StateITRDocDetected
		return engine.Text(i18n.Tf(lang, i18n.KeyDocDetected, label)), nil

	case session.StateITRDocDetected:
		switch text {
		case "1":
			delete(s.Data, dataDocType)
			resp := engine.Text(i18n.T(lang, i18n.KeyRequestLogged))
			resp.Messages = append(resp.Messages, goTo(s, session.StateITRMenu).Messages...)
			return resp, nil
		case "2":
			return goTo(s, session.StateITRDocTypeMenu), nil
		}
		return nil, nil
	}
	return nil, nil
}
