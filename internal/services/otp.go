package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/phaseGateTwo/cms-backend/internal/models"
	"github.com/phaseGateTwo/cms-backend/internal/storage"
)

// CodeSource returns a uniformly distributed integer in [0, max).
// The default source reads crypto/rand; tests inject a fixed sequence.
type CodeSource func(max int64) (int64, error)

// SecureCodeSource draws from crypto/rand.
func SecureCodeSource(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// OTPService generates, stores and consumes one-time codes.
type OTPService struct {
	store  storage.Store
	source CodeSource
}

// NewOTPService creates an OTP service using the secure randomness source.
func NewOTPService(store storage.Store) *OTPService {
	return NewOTPServiceWithSource(store, SecureCodeSource)
}

// NewOTPServiceWithSource creates an OTP service with an injected randomness
// source so tests can fix the generated codes.
func NewOTPServiceWithSource(store storage.Store, source CodeSource) *OTPService {
	return &OTPService{store: store, source: source}
}

// GenerateCode returns a zero-padded 6-digit code.
func (s *OTPService) GenerateCode() (string, error) {
	n, err := s.source(1_000_000)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}
	return fmt.Sprintf("%06d", n), nil
}

// CreateForLogin issues a code for an existing account. Any previous record
// for the phone is replaced.
func (s *OTPService) CreateForLogin(phone string) (*models.OTPRecord, error) {
	return s.create(phone, "", "")
}

// CreateForSignup issues a code carrying the pending registration fields.
func (s *OTPService) CreateForSignup(phone, fullName, email string) (*models.OTPRecord, error) {
	return s.create(phone, fullName, email)
}

func (s *OTPService) create(phone, fullName, email string) (*models.OTPRecord, error) {
	code, err := s.GenerateCode()
	if err != nil {
		return nil, err
	}

	record := &models.OTPRecord{
		PhoneNumber:     phone,
		Code:            code,
		CreatedAt:       time.Now(),
		PendingFullName: fullName,
		PendingEmail:    email,
	}

	if err := s.store.PutOTP(record); err != nil {
		return nil, fmt.Errorf("otp store: %w", err)
	}
	return record, nil
}

// ValidateAndConsume atomically checks and deletes the record for phone.
// On success the consumed record (with any pending signup fields) is
// returned so the caller can act on it exactly once.
func (s *OTPService) ValidateAndConsume(phone, code string) (*models.OTPRecord, error) {
	record, err := s.store.TakeOTPIfMatches(phone, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidOTP
		}
		// Store I/O trouble is not an invalid code; surface it so the
		// caller can retry.
		return nil, fmt.Errorf("otp store: %w", err)
	}
	return record, nil
}
