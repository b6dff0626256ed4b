// SPDX-License-Identifier: MIT

// Package outbox implements the outbound delivery pipeline: a bounded
// FIFO queue, per-recipient and global rate limiting, a worker pool with
// exponential-backoff retry, and a dead-letter store with operator replay.
package outbox

import "time"

// Status is the lifecycle state of an outbound message.
type Status string

const (
	StatusQueued         Status = "queued"
	StatusSending        Status = "sending"
	StatusDelivered      Status = "delivered"
	StatusRetryScheduled Status = "retry_scheduled"
	StatusDeadLettered   Status = "dead_lettered"
)

// Payload is the message body: text, or a media reference with caption.
type Payload struct {
	Text     string `json:"text,omitempty"`
	MediaRef string `json:"media_ref,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// Message is an outbound message owned exclusively by the pipeline.
type Message struct {
	ID          string    `json:"id"`
	Recipient   string    `json:"recipient"`
	Payload     Payload   `json:"payload"`
	Attempt     int       `json:"attempt"`
	NextRetryAt time.Time `json:"next_retry_at,omitempty"`
	Status      Status    `json:"status"`
	EnqueuedAt  time.Time `json:"enqueued_at"`

	// seq preserves FIFO order among messages ready at the same instant.
	// It is assigned once at enqueue and survives requeues so a deferred
	// message cannot be overtaken by a later one for the same recipient.
	seq uint64
}

// DeadLetterEntry is the immutable snapshot of a message at exhaustion.
type DeadLetterEntry struct {
	ID             string    `json:"id"`
	Recipient      string    `json:"recipient"`
	Payload        Payload   `json:"payload"`
	FailureReason  string    `json:"failure_reason"`
	RetryCount     int       `json:"retry_count"`
	EnqueuedAt     time.Time `json:"enqueued_at"`
	DeadLetteredAt time.Time `json:"dead_lettered_at"`
}
