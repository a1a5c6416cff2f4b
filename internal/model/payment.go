package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod enumerates the accepted payment methods
type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "credit_card"
	PaymentMethodPaypal         PaymentMethod = "paypal"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPaypal,
		PaymentMethodBankTransfer, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

// PaymentStatus enumerates the payment processing states
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment represents the payment for an order. OrderID is unique, so an
// order has at most one payment row.
type Payment struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"uniqueIndex;not null"`
	Method    PaymentMethod   `json:"method" gorm:"type:varchar(30);not null;check:method IN ('credit_card','paypal','bank_transfer','cash_on_delivery')"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null;check:amount >= 0"`
	Status    PaymentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','completed','failed','refunded')"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

var (
	// ErrInvalidPaymentMethod is returned for a method outside the enum.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrInvalidPaymentStatus is returned for a status outside the enum.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	// ErrNegativeAmount is returned when a payment amount is below zero.
	ErrNegativeAmount = errors.New("payment amount must not be negative")
)

// BeforeCreate validates method, status and amount ahead of the engine's checks.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if !p.Method.Valid() {
		return ErrInvalidPaymentMethod
	}
	if !p.Status.Valid() {
		return ErrInvalidPaymentStatus
	}
	if p.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
