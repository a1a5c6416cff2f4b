package model

import (
	"time"
)

// Category represents a product category. Categories form a tree through
// ParentID; removing a parent detaches its children instead of deleting them.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ParentID    *uint     `json:"parent_id,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Parent   *Category  `json:"parent,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Products []Product  `json:"products,omitempty" gorm:"many2many:product_categories;constraint:OnDelete:CASCADE"`
}

// ProductCategory is the join row between products and categories. It is
// registered with SetupJoinTable so the composite key applies instead of
// GORM's implicit join table; both foreign keys cascade on delete.
type ProductCategory struct {
	ProductID  uint      `json:"product_id" gorm:"primaryKey"`
	CategoryID uint      `json:"category_id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
}
