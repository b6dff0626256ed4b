// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldUserID    = "user_id"
	FieldMessageID = "message_id"
	FieldRequestID = "request_id"
	FieldRecipient = "recipient"

	// Process fields
	FieldComponent = "component"
	FieldHandler   = "handler"
	FieldCommand   = "command"

	// State fields
	FieldState    = "state"
	FieldOldState = "old_state"
	FieldNewState = "new_state"

	// Delivery fields
	FieldAttempt   = "attempt"
	FieldStatus    = "status"
	FieldOutboxID  = "outbox_id"
	FieldRetryAt   = "retry_at"
	FieldReason    = "reason"
	FieldQueueSize = "queue_size"
)
