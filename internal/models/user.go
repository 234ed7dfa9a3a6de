package models

import (
	"time"
)

// User is a registered account. It is created exactly once, when a signup
// OTP is confirmed, from the pending fields stored on the OTP record.
type User struct {
	UserID      string    `json:"userId" gorm:"primaryKey"`
	PhoneNumber string    `json:"phoneNumber" gorm:"uniqueIndex;not null"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateProfileRequest carries the editable profile fields. Empty fields
// are left unchanged.
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
