// SPDX-License-Identifier: MIT

package outbox

import "errors"

// ErrPermanent marks a delivery failure that must not be retried:
// invalid recipient, blocked number, payload rejected.
var ErrPermanent = errors.New("permanent delivery failure")

// ErrTransient marks a delivery failure worth retrying: network timeout,
// upstream 5xx, upstream rate limiting.
var ErrTransient = errors.New("transient delivery failure")

// ErrQueueFull is returned by Enqueue when the bounded queue is at
// capacity.
var ErrQueueFull = errors.New("outbox: queue full")

// ErrNotFound is returned when a dead-letter id does not exist.
var ErrNotFound = errors.New("outbox: entry not found")

// IsPermanent reports whether err classifies as a permanent failure.
// Unclassified errors are treated as transient so they stay inside the
// bounded retry budget rather than being dropped.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanent)
}
