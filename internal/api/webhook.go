// SPDX-License-Identifier: MIT

package api

import (
	"strconv"
	"time"

	"github.com/taxsetu/waflow/internal/engine"
)

// envelope is the subset of the WhatsApp Cloud API webhook payload the
// engine cares about.
type envelope struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []inboundMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type inboundMessage struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`

	Text *struct {
		Body string `json:"body"`
	} `json:"text"`

	Image    *mediaRef `json:"image"`
	Document *mediaRef `json:"document"`

	Interactive *struct {
		ButtonReply *interactiveReply `json:"button_reply"`
		ListReply   *interactiveReply `json:"list_reply"`
	} `json:"interactive"`
}

type mediaRef struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
}

type interactiveReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// events flattens the envelope into engine events, dropping message
// types the engine has no use for (reactions, statuses, stickers).
func (e envelope) events() []engine.Event {
	var out []engine.Event
	for _, entry := range e.Entry {
		for _, change := range entry.Changes {
			for _, m := range change.Value.Messages {
				if ev, ok := m.toEvent(); ok {
					out = append(out, ev)
				}
			}
		}
	}
	return out
}

func (m inboundMessage) toEvent() (engine.Event, bool) {
	ev := engine.Event{
		SenderID:  m.From,
		MessageID: m.ID,
		Timestamp: parseUnix(m.Timestamp),
	}

	switch m.Type {
	case "text":
		ev.Type = engine.EventText
		if m.Text != nil {
			ev.Text = m.Text.Body
		}
	case "image":
		ev.Type = engine.EventImage
		if m.Image != nil {
			ev.MediaRef = m.Image.ID
			ev.Text = m.Image.Caption
		}
	case "document":
		ev.Type = engine.EventDocument
		if m.Document != nil {
			ev.MediaRef = m.Document.ID
			ev.Text = m.Document.Caption
		}
	case "interactive":
		ev.Type = engine.EventInteractive
		if m.Interactive != nil {
			if r := m.Interactive.ButtonReply; r != nil {
				ev.Text = r.ID
			} else if r := m.Interactive.ListReply; r != nil {
				ev.Text = r.ID
			}
		}
	default:
		return engine.Event{}, false
	}
	return ev, true
}

func parseUnix(ts string) time.Time {
	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
