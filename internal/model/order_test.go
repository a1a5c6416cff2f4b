package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	items := []OrderItem{
		{Quantity: 1, UnitPrice: decimal.RequireFromString("850.00")},
		{Quantity: 2, UnitPrice: decimal.RequireFromString("25.50")},
	}

	total := ComputeTotal(items)
	require.True(t, total.Equal(decimal.RequireFromString("901.00")),
		"expected 901.00, got %s", total)
}

func TestComputeTotalEmpty(t *testing.T) {
	require.True(t, ComputeTotal(nil).Equal(decimal.Zero))
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")}
	require.True(t, item.LineTotal().Equal(decimal.RequireFromString("59.97")))
}

func TestOrderStatusValid(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		require.True(t, status.Valid(), "status %q should be valid", status)
	}

	require.False(t, OrderStatus("unknown").Valid())
	require.False(t, OrderStatus("").Valid())
}

func TestOrderBeforeCreateRejectsInvalidStatus(t *testing.T) {
	order := Order{Status: OrderStatus("bogus")}
	require.ErrorIs(t, order.BeforeCreate(nil), ErrInvalidOrderStatus)

	order.Status = OrderStatusPending
	require.NoError(t, order.BeforeCreate(nil))
}

func TestOrderItemBeforeCreate(t *testing.T) {
	item := OrderItem{Quantity: 0, UnitPrice: decimal.RequireFromString("10.00")}
	require.ErrorIs(t, item.BeforeCreate(nil), ErrNonPositiveQuantity)

	item = OrderItem{Quantity: 1, UnitPrice: decimal.RequireFromString("-0.01")}
	require.ErrorIs(t, item.BeforeCreate(nil), ErrNegativeUnitPrice)

	item = OrderItem{Quantity: 1, UnitPrice: decimal.Zero}
	require.NoError(t, item.BeforeCreate(nil))
}
