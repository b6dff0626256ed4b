// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"time"

	"github.com/taxsetu/waflow/internal/engine"
	"github.com/taxsetu/waflow/internal/facade"
	"github.com/taxsetu/waflow/internal/i18n"
	"github.com/taxsetu/waflow/internal/session"
)

// NotifyHandler owns notification preferences and deadline reminders.
type NotifyHandler struct {
	Notifier facade.NotificationScheduler

	// now is a test hook for reminder scheduling.
	now func() time.Time
}

func (h *NotifyHandler) Name() string { return "notify" }

var notifyStates = claims(
	session.StateNotificationSettings,
	session.StateNotifyFrequency,
)

func (h *NotifyHandler) Claims(st session.State) bool { return notifyStates.has(st) }

func (h *NotifyHandler) Handle(ctx context.Context, s *session.Session, ev engine.Event) (*engine.Response, error) {
	text := norm(ev.Text)
	lang := s.Language

	switch s.State {
	case session.StateNotificationSettings:
		switch text {
		case "1":
			return goTo(s, session.StateNotifyFrequency), nil
		case "2":
			if err := h.Notifier.SetPreference(ctx, s.UserID, "ca_updates"); err != nil {
				return nil, err
			}
			return engine.Text(i18n.T(lang, i18n.KeyNotifySaved)), nil
		case "3":
			if err := h.Notifier.SetPreference(ctx, s.UserID, "mute_all"); err != nil {
				return nil, err
			}
			return engine.Text(i18n.T(lang, i18n.KeyNotifySaved)), nil
		}
		return nil, nil

	case session.StateNotifyFrequency:
		var daysBefore int
		switch text {
		case "1":
			daysBefore = 7
		case "2":
			daysBefore = 3
		case "3":
			daysBefore = 0
		default:
			return nil, nil
		}

		// GSTR-3B is due on the 20th of the following month.
		due := h.nextDueDate()
		at := due.AddDate(0, 0, -daysBefore)
		if err := h.Notifier.Schedule(ctx, s.UserID, "filing_deadline", at); err != nil {
			return nil, err
		}

		resp := engine.Text(i18n.T(lang, i18n.KeyNotifySaved))
		resp.Messages = append(resp.Messages, backOrMain(s).Messages...)
		return resp, nil
	}
	return nil, nil
}

func (h *NotifyHandler) nextDueDate() time.Time {
	now := time.Now()
	if h.now != nil {
		now = h.now()
	}
	due := time.Date(now.Year(), now.Month(), 20, 9, 0, 0, 0, now.Location())
	if !due.After(now) {
		due = due.AddDate(0, 1, 0)
	}
	return due
}
