package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Review represents a product review. UserID is nullable: deleting the
// author keeps the review but severs the reference.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	UserID    *uint     `json:"user_id,omitempty" gorm:"index"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrRatingOutOfRange is returned when a rating falls outside 1..5.
var ErrRatingOutOfRange = errors.New("review rating must be between 1 and 5")

// BeforeCreate validates the rating range ahead of the engine's check constraint.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrRatingOutOfRange
	}
	return nil
}
