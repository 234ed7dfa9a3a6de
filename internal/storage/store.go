package storage

import (
	"errors"
	"time"

	"github.com/phaseGateTwo/cms-backend/internal/models"
)

// DefaultOTPTTL is how long an OTP record stays readable after creation.
const DefaultOTPTTL = 5 * time.Minute

var (
	// ErrNotFound is returned when a record does not exist. For OTP records
	// it also covers expiry and code mismatch: the store never says which.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("duplicate record")
)

// Store defines the interface for storage operations
type Store interface {
	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)
	GetUserByPhone(phone string) (*models.User, error)
	UserExistsByPhone(phone string) (bool, error)
	UpdateUser(user *models.User) error

	// OTP operations. PutOTP unconditionally replaces any record for the
	// same phone and restarts its TTL. TakeOTPIfMatches is an atomic
	// test-and-delete: at most one concurrent caller gets the record.
	PutOTP(record *models.OTPRecord) error
	GetOTP(phone string) (*models.OTPRecord, error)
	TakeOTPIfMatches(phone, code string) (*models.OTPRecord, error)
	DeleteExpiredOTPs() (int64, error)

	// Contact operations
	CreateContact(contact *models.Contact) (*models.Contact, error)
	GetContactByID(contactID string) (*models.Contact, error)
	GetContactByIDAndUser(contactID, userID string) (*models.Contact, error)
	GetContactByPhoneAndUser(phone, userID string) (*models.Contact, error)
	GetContactsByUser(userID string) ([]*models.Contact, error)
	UpdateContact(contact *models.Contact) error
	DeleteContact(contactID string) error
}
