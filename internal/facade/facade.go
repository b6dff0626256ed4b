// SPDX-License-Identifier: MIT

// Package facade declares the narrow interfaces through which state
// transitions call external domain capabilities — identifier validation,
// document parsing, tax computation and notification scheduling. Their
// implementations live outside this engine; each call either returns a
// result or a typed error, and is expected to enforce its own timeout.
package facade

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable wraps any facade failure that is not the caller's fault.
// The engine aborts the transition, leaves the session unchanged and sends
// a generic apology.
var ErrUnavailable = errors.New("facade: service unavailable")

// ErrRejected marks input the service understood but refused (e.g. a
// GSTIN that fails the checksum). The engine re-prompts without changing
// state.
var ErrRejected = errors.New("facade: input rejected")

// Error carries the failing service and operation for logs.
type Error struct {
	Service string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Service, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IdentifierValidator checks tax identifiers (GSTIN, PAN).
type IdentifierValidator interface {
	ValidateGSTIN(ctx context.Context, gstin string) (GSTINInfo, error)
	ValidatePAN(ctx context.Context, pan string) error
}

// GSTINInfo is the validator's view of a registered GSTIN.
type GSTINInfo struct {
	GSTIN     string
	LegalName string
	StateCode string
}

// DocumentParser extracts structured fields from an uploaded document.
type DocumentParser interface {
	ParseInvoice(ctx context.Context, mediaRef string) (ParsedInvoice, error)
}

// ParsedInvoice is the parser's output for an invoice upload.
type ParsedInvoice struct {
	InvoiceNo string
	Seller    string
	Amount    string
	Date      time.Time
}

// TaxComputer produces return summaries and ITR computations.
type TaxComputer interface {
	GSTR3BSummary(ctx context.Context, gstin, period string) (GSTR3BSummary, error)
	ComputeITR(ctx context.Context, in ITRInput) (ITRResult, error)
}

// GSTR3BSummary is the computed monthly summary for a GSTIN and period.
type GSTR3BSummary struct {
	Period     string
	OutwardTax string
	ITC        string
	NetPayable string
}

// ITRInput carries the guided-flow answers.
type ITRInput struct {
	PAN          string
	Salary       int64
	OtherIncome  int64
	Deduction80C int64
	Deduction80D int64
	TDS          int64
}

// ITRResult is the computed tax position.
type ITRResult struct {
	TaxableIncome string
	TaxPayable    string
	RefundDue     string
}

// NotificationScheduler registers future reminders for a user.
type NotificationScheduler interface {
	Schedule(ctx context.Context, userID, kind string, at time.Time) error
	SetPreference(ctx context.Context, userID, preference string) error
}
