package services

import (
	"errors"
)

// Typed failures raised by the service layer. Handlers branch on these with
// errors.Is and map them to HTTP status codes; anything else is a 500.
var (
	// ErrInvalidOTP covers a missing record, an expired record and a code
	// mismatch alike, so a caller cannot probe whether a phone has a
	// pending OTP.
	ErrInvalidOTP = errors.New("invalid or expired OTP")

	ErrUserAlreadyExists = errors.New("user with this phone number already exists")
	ErrUserNotFound      = errors.New("user not found")

	ErrContactNotFound     = errors.New("contact not found")
	ErrDuplicateContact    = errors.New("contact with this phone number already exists")
	ErrContactAccessDenied = errors.New("contact belongs to another user")
)
