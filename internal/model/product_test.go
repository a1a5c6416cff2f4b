package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProductBeforeCreate(t *testing.T) {
	product := Product{SKU: "SKU-1", Name: "Widget", Price: decimal.RequireFromString("-1.00")}
	require.ErrorIs(t, product.BeforeCreate(nil), ErrNegativePrice)

	product = Product{SKU: "SKU-1", Name: "Widget", Price: decimal.Zero, StockQty: -5}
	require.ErrorIs(t, product.BeforeCreate(nil), ErrNegativeStock)

	product = Product{SKU: "SKU-1", Name: "Widget", Price: decimal.RequireFromString("9.99"), StockQty: 10}
	require.NoError(t, product.BeforeCreate(nil))
}
