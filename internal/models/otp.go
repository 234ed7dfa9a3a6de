package models

import (
	"time"
)

// OTPRecord is the single in-flight verification for a phone number.
// The phone number is the primary key, so issuing a new code for the same
// phone replaces the previous record unconditionally.
type OTPRecord struct {
	PhoneNumber string    `json:"phoneNumber" gorm:"primaryKey"`
	Code        string    `json:"-" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`

	// Pending signup fields - empty for login-flow records. Storing them
	// here keeps the OTP record the single source of truth for an in-flight
	// signup: the data vanishes with the record on consume or expiry.
	PendingFullName string `json:"-"`
	PendingEmail    string `json:"-"`
}

// IsSignup reports whether this record was issued for the signup flow.
func (r *OTPRecord) IsSignup() bool {
	return r.PendingFullName != "" || r.PendingEmail != ""
}
