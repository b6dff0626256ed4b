// SPDX-License-Identifier: MIT

package facade

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Static implements every facade with local rules only: format checks for
// identifiers, canned summaries for computations. It backs tests and demo
// deployments where the real services are not wired.
type Static struct{}

var (
	gstinRe = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	panRe   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

func (Static) ValidateGSTIN(_ context.Context, gstin string) (GSTINInfo, error) {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if !gstinRe.MatchString(gstin) {
		return GSTINInfo{}, &Error{Service: "validator", Op: "ValidateGSTIN", Err: ErrRejected}
	}
	return GSTINInfo{GSTIN: gstin, LegalName: "Registered Taxpayer", StateCode: gstin[:2]}, nil
}

func (Static) ValidatePAN(_ context.Context, pan string) error {
	if !panRe.MatchString(strings.ToUpper(strings.TrimSpace(pan))) {
		return &Error{Service: "validator", Op: "ValidatePAN", Err: ErrRejected}
	}
	return nil
}

func (Static) ParseInvoice(_ context.Context, mediaRef string) (ParsedInvoice, error) {
	if mediaRef == "" {
		return ParsedInvoice{}, &Error{Service: "parser", Op: "ParseInvoice", Err: ErrRejected}
	}
	return ParsedInvoice{
		InvoiceNo: "INV-0001",
		Seller:    "Demo Traders",
		Amount:    "11,800",
		Date:      time.Now(),
	}, nil
}

func (Static) GSTR3BSummary(_ context.Context, gstin, period string) (GSTR3BSummary, error) {
	if gstin == "" {
		return GSTR3BSummary{}, &Error{Service: "tax", Op: "GSTR3BSummary", Err: ErrRejected}
	}
	return GSTR3BSummary{
		Period:     period,
		OutwardTax: "42,000",
		ITC:        "18,500",
		NetPayable: "23,500",
	}, nil
}

func (Static) ComputeITR(_ context.Context, in ITRInput) (ITRResult, error) {
	gross := in.Salary + in.OtherIncome
	deductions := in.Deduction80C + in.Deduction80D
	taxable := gross - deductions
	if taxable < 0 {
		taxable = 0
	}
	// Flat demo slab; the real computation lives behind the facade.
	tax := taxable / 10
	refund := int64(0)
	if in.TDS > tax {
		refund = in.TDS - tax
		tax = 0
	} else {
		tax -= in.TDS
	}
	return ITRResult{
		TaxableIncome: fmt.Sprintf("%d", taxable),
		TaxPayable:    fmt.Sprintf("%d", tax),
		RefundDue:     fmt.Sprintf("%d", refund),
	}, nil
}

func (Static) Schedule(_ context.Context, _, _ string, _ time.Time) error { return nil }

func (Static) SetPreference(_ context.Context, _, _ string) error { return nil }
