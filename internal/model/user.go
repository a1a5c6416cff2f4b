package model

import (
	"time"
)

// User represents a store customer account
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Deleting a user takes the profile and addresses with it. Orders are
	// protected: the delete is refused while any exist. Reviews survive
	// with their user reference nulled.
	Profile   *Profile  `json:"profile,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Addresses []Address `json:"addresses,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Orders    []Order   `json:"orders,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	Reviews   []Review  `json:"reviews,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}

// Profile holds optional per-user profile data. The user ID doubles as the
// primary key, so a user has at most one profile.
type Profile struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100)"`
	Phone     string    `json:"phone" gorm:"type:varchar(30)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
