package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents the product master data
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	SKU         string          `json:"sku" gorm:"type:varchar(100);uniqueIndex;not null"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;check:price >= 0"`
	StockQty    int             `json:"stock_qty" gorm:"default:0;check:stock_qty >= 0"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Order items keep the product alive: deletes are restricted while any
	// reference it. Reviews go down with the product.
	Categories []Category  `json:"categories,omitempty" gorm:"many2many:product_categories;constraint:OnDelete:CASCADE"`
	OrderItems []OrderItem `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Reviews    []Review    `json:"reviews,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

var (
	// ErrNegativePrice is returned when a product price is below zero.
	ErrNegativePrice = errors.New("product price must not be negative")
	// ErrNegativeStock is returned when a stock quantity is below zero.
	ErrNegativeStock = errors.New("product stock quantity must not be negative")
)

// BeforeCreate rejects rows the engine's check constraints would refuse anyway,
// so callers get a typed error instead of a driver error.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.StockQty < 0 {
		return ErrNegativeStock
	}
	return nil
}
