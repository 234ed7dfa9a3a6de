package models

import (
	"time"
)

// Contact is an address-book entry owned by a single user.
type Contact struct {
	ContactID string    `json:"contactId" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"uniqueIndex:idx_owner_phone;not null"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone" gorm:"uniqueIndex:idx_owner_phone;not null"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AddContactRequest is the payload for creating a contact.
type AddContactRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// EditContactRequest carries the editable contact fields. Empty fields are
// left unchanged.
type EditContactRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}
