package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/phaseGateTwo/cms-backend/internal/models"
	"github.com/phaseGateTwo/cms-backend/internal/storage"
)

// AuthService sequences the verify/signup/login flows against the OTP
// service and the user directory.
type AuthService struct {
	store  storage.Store
	otps   *OTPService
	tokens *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(store storage.Store, otps *OTPService, tokens *TokenService) *AuthService {
	return &AuthService{
		store:  store,
		otps:   otps,
		tokens: tokens,
	}
}

// Verify starts the flow for a phone number. A registered phone gets a login
// OTP; an unregistered one gets a nil code, telling the client to show the
// signup form.
func (s *AuthService) Verify(phone string) (*models.VerifyUserResponse, error) {
	exists, err := s.store.UserExistsByPhone(phone)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if !exists {
		return &models.VerifyUserResponse{PhoneNumber: phone}, nil
	}

	record, err := s.otps.CreateForLogin(phone)
	if err != nil {
		return nil, err
	}
	return &models.VerifyUserResponse{PhoneNumber: phone, VerificationCode: &record.Code}, nil
}

// Signup stores the submitted registration fields inside a fresh OTP record.
// A phone that already has an account is rejected before any OTP is issued.
func (s *AuthService) Signup(phone, fullName, email string) (*models.VerifyUserResponse, error) {
	exists, err := s.store.UserExistsByPhone(phone)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	record, err := s.otps.CreateForSignup(phone, fullName, email)
	if err != nil {
		return nil, err
	}
	return &models.VerifyUserResponse{PhoneNumber: phone, VerificationCode: &record.Code}, nil
}

// ConfirmSignup consumes the code, creates the account from the pending
// fields and mints a token bound to the new user ID.
//
// The OTP is gone once consumed. If user creation fails after that, the
// pending data is lost and the client restarts from signup; consumption and
// creation are not one transaction.
func (s *AuthService) ConfirmSignup(phone, code string) (string, error) {
	record, err := s.otps.ValidateAndConsume(phone, code)
	if err != nil {
		return "", err
	}

	user := &models.User{
		UserID:      uuid.NewString(),
		PhoneNumber: record.PhoneNumber,
		FullName:    record.PendingFullName,
		Email:       record.PendingEmail,
	}
	saved, err := s.store.CreateUser(user)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.tokens.GenerateToken(saved.UserID, saved.PhoneNumber)
}

// ConfirmLogin consumes the code and mints a token for the existing account.
// A valid code whose account has vanished (deleted after OTP issuance) is
// the distinct ErrUserNotFound, not ErrInvalidOTP.
func (s *AuthService) ConfirmLogin(phone, code string) (string, error) {
	if _, err := s.otps.ValidateAndConsume(phone, code); err != nil {
		return "", err
	}

	user, err := s.store.GetUserByPhone(phone)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("user lookup: %w", err)
	}

	return s.tokens.GenerateToken(user.UserID, user.PhoneNumber)
}
