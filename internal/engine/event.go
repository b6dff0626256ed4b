// SPDX-License-Identifier: MIT

// Package engine processes inbound conversation events: it deduplicates
// redeliveries, serializes processing per user, runs the global command
// interceptor, delegates to the handler chain, falls back to the state
// transition table, and commits the session with optimistic concurrency.
package engine

import (
	"time"

	"github.com/taxsetu/waflow/internal/outbox"
)

// EventType classifies the inbound gateway event.
type EventType string

const (
	EventText        EventType = "text"
	EventImage       EventType = "image"
	EventDocument    EventType = "document"
	EventInteractive EventType = "interactiveReply"
)

// Event is one inbound message as delivered by the gateway webhook.
type Event struct {
	SenderID  string
	MessageID string
	Type      EventType
	Text      string
	MediaRef  string
	Timestamp time.Time

	// LangHint is the BCP 47 tag from the sender's contact profile, used
	// only when creating a fresh session.
	LangHint string
}

// Response carries the outbound messages a transition produced, in send
// order. A nil *Response from a handler means "pass".
type Response struct {
	Messages []outbox.Payload
}

// Text builds a Response with one text message per argument.
func Text(msgs ...string) *Response {
	r := &Response{}
	for _, m := range msgs {
		r.Messages = append(r.Messages, outbox.Payload{Text: m})
	}
	return r
}

// Add appends a payload and returns r for chaining.
func (r *Response) Add(p outbox.Payload) *Response {
	r.Messages = append(r.Messages, p)
	return r
}
