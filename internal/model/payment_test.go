package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodValid(t *testing.T) {
	for _, method := range []PaymentMethod{
		PaymentMethodCreditCard, PaymentMethodPaypal,
		PaymentMethodBankTransfer, PaymentMethodCashOnDelivery,
	} {
		require.True(t, method.Valid(), "method %q should be valid", method)
	}
	require.False(t, PaymentMethod("cheque").Valid())
}

func TestPaymentStatusValid(t *testing.T) {
	for _, status := range []PaymentStatus{
		PaymentStatusPending, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusRefunded,
	} {
		require.True(t, status.Valid(), "status %q should be valid", status)
	}
	require.False(t, PaymentStatus("charged").Valid())
}

func TestPaymentBeforeCreate(t *testing.T) {
	payment := Payment{Method: PaymentMethod("cheque"), Status: PaymentStatusPending}
	require.ErrorIs(t, payment.BeforeCreate(nil), ErrInvalidPaymentMethod)

	payment = Payment{Method: PaymentMethodPaypal, Status: PaymentStatus("charged")}
	require.ErrorIs(t, payment.BeforeCreate(nil), ErrInvalidPaymentStatus)

	payment = Payment{
		Method: PaymentMethodPaypal,
		Status: PaymentStatusPending,
		Amount: decimal.RequireFromString("-10.00"),
	}
	require.ErrorIs(t, payment.BeforeCreate(nil), ErrNegativeAmount)

	payment.Amount = decimal.RequireFromString("99.90")
	require.NoError(t, payment.BeforeCreate(nil))
}
