// SPDX-License-Identifier: MIT

package facade

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGSTIN(t *testing.T) {
	var v Static

	info, err := v.ValidateGSTIN(context.Background(), "27AAPFU0939F1ZV")
	require.NoError(t, err)
	assert.Equal(t, "27", info.StateCode)

	// Lowercase and padding are normalized.
	_, err = v.ValidateGSTIN(context.Background(), "  27aapfu0939f1zv ")
	assert.NoError(t, err)

	_, err = v.ValidateGSTIN(context.Background(), "not-a-gstin")
	assert.ErrorIs(t, err, ErrRejected)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "validator", fe.Service)
}

func TestValidatePAN(t *testing.T) {
	var v Static

	assert.NoError(t, v.ValidatePAN(context.Background(), "ABCDE1234F"))
	assert.ErrorIs(t, v.ValidatePAN(context.Background(), "1234"), ErrRejected)
}

func TestComputeITR(t *testing.T) {
	var c Static

	res, err := c.ComputeITR(context.Background(), ITRInput{
		PAN: "ABCDE1234F", Salary: 1200000, OtherIncome: 50000,
		Deduction80C: 150000, Deduction80D: 25000, TDS: 120000,
	})
	require.NoError(t, err)
	assert.Equal(t, "1075000", res.TaxableIncome)

	// TDS above liability yields a refund, not negative tax.
	res, err = c.ComputeITR(context.Background(), ITRInput{Salary: 100000, TDS: 50000})
	require.NoError(t, err)
	assert.Equal(t, "0", res.TaxPayable)
	assert.Equal(t, "40000", res.RefundDue)
}
