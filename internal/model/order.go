package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus enumerates the order lifecycle states
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a customer order
type Order struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	UserID            uint            `json:"user_id" gorm:"not null;index"`
	Status            OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','paid','shipped','delivered','cancelled')"`
	OrderDate         time.Time       `json:"order_date" gorm:"not null"`
	ShippingAddressID *uint           `json:"shipping_address_id,omitempty"`
	TotalAmount       decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	ShippingAddress *Address    `json:"shipping_address,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Items           []OrderItem `json:"items,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Payment         *Payment    `json:"payment,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// OrderItem is one product line of an order. The (order, product) pair is
// the primary key, so a product appears at most once per order.
type OrderItem struct {
	OrderID   uint            `json:"order_id" gorm:"primaryKey"`
	ProductID uint            `json:"product_id" gorm:"primaryKey"`
	Quantity  int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null;check:unit_price >= 0"`
	CreatedAt time.Time       `json:"created_at"`
}

var (
	// ErrInvalidOrderStatus is returned for a status outside the enum.
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrNonPositiveQuantity is returned when an item quantity is zero or less.
	ErrNonPositiveQuantity = errors.New("order item quantity must be positive")
	// ErrNegativeUnitPrice is returned when an item unit price is below zero.
	ErrNegativeUnitPrice = errors.New("order item unit price must not be negative")
)

// BeforeCreate validates the status enum ahead of the engine's check constraint.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if !o.Status.Valid() {
		return ErrInvalidOrderStatus
	}
	return nil
}

// BeforeCreate validates quantity and unit price ahead of the engine's checks.
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.Quantity <= 0 {
		return ErrNonPositiveQuantity
	}
	if i.UnitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	return nil
}

// LineTotal returns quantity x unit price for this item.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotal sums the line totals of the given items. The order total is
// not maintained by the schema; callers recompute and store it explicitly.
func ComputeTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
