package services

import (
	"errors"
	"testing"
	"time"

	"github.com/phaseGateTwo/cms-backend/internal/storage"
)

func newAuthService(store storage.Store, source CodeSource) (*AuthService, *TokenService) {
	tokens := NewTokenService("test-secret", time.Hour)
	otps := NewOTPServiceWithSource(store, source)
	return NewAuthService(store, otps, tokens), tokens
}

func TestVerifyUnregisteredPhoneIssuesNoCode(t *testing.T) {
	store := storage.NewMemoryStore()
	auth, _ := newAuthService(store, fixedSource(123456))

	resp, err := auth.Verify("555")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if resp.PhoneNumber != "555" {
		t.Fatalf("unexpected phone %q", resp.PhoneNumber)
	}
	if resp.VerificationCode != nil {
		t.Fatalf("unregistered phone should get no code, got %q", *resp.VerificationCode)
	}

	// And no OTP record may exist either.
	if _, err := store.GetOTP("555"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("no record should have been stored, got err=%v", err)
	}
}

func TestSignupThenConfirmCreatesUser(t *testing.T) {
	store := storage.NewMemoryStore()
	auth, tokens := newAuthService(store, fixedSource(123456))

	resp, err := auth.Signup("555", "Ann", "a@x.com")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if resp.VerificationCode == nil || *resp.VerificationCode != "123456" {
		t.Fatalf("unexpected response %+v", resp)
	}

	token, err := auth.ConfirmSignup("555", "123456")
	if err != nil {
		t.Fatalf("ConfirmSignup: %v", err)
	}

	userID, ok := tokens.ValidateToken(token)
	if !ok {
		t.Fatal("minted token should validate")
	}

	user, err := store.GetUserByPhone("555")
	if err != nil {
		t.Fatalf("user should exist: %v", err)
	}
	if user.UserID != userID {
		t.Fatalf("token bound to %q, user is %q", userID, user.UserID)
	}
	if user.FullName != "Ann" || user.Email != "a@x.com" {
		t.Fatalf("pending fields not applied: %+v", user)
	}
}

func TestSignupExistingPhoneRejectedBeforeOTP(t *testing.T) {
	store := storage.NewMemoryStore()
	auth, _ := newAuthService(store, fixedSource(123456, 654321))

	if _, err := auth.Signup("555", "Ann", "a@x.com"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := auth.ConfirmSignup("555", "123456"); err != nil {
		t.Fatalf("ConfirmSignup: %v", err)
	}

	if _, err := auth.Signup("555", "Mallory", "m@x.com"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("got err=%v, want ErrUserAlreadyExists", err)
	}

	// The rejected signup must not have created or replaced an OTP record.
	if _, err := store.GetOTP("555"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("no record should have been stored, got err=%v", err)
	}
}

func TestVerifyRegisteredPhoneIssuesLoginCode(t *testing.T) {
	store := storage.NewMemoryStore()
	auth, tokens := newAuthService(store, fixedSource(123456, 654321))

	if _, err := auth.Signup("555", "Ann", "a@x.com"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	signupToken, err := auth.ConfirmSignup("555", "123456")
	if err != nil {
		t.Fatalf("ConfirmSignup: %v", err)
	}

	resp, err := auth.Verify("555")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if resp.VerificationCode == nil || *resp.VerificationCode != "654321" {
		t.Fatalf("registered phone should get a login code, got %+v", resp)
	}

	loginToken, err := auth.ConfirmLogin("555", "654321")
	if err != nil {
		t.Fatalf("ConfirmLogin: %v", err)
	}

	// Both tokens are bound to the same account.
	signupUser, _ := tokens.ValidateToken(signupToken)
	loginUser, ok := tokens.ValidateToken(loginToken)
	if !ok || loginUser != signupUser {
		t.Fatalf("login bound to %q, signup bound to %q", loginUser, signupUser)
	}
}

func TestConfirmLoginInvalidCode(t *testing.T) {
	store := storage.NewMemoryStore()
	auth, _ := newAuthService(store, fixedSource(123456))

	// A fabricated code for a never-verified phone is InvalidOTP, not a
	// user-existence probe.
	if _, err := auth.ConfirmLogin("000", "123456"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("got err=%v, want ErrInvalidOTP", err)
	}
}

func TestConfirmLoginAccountGoneAfterIssuance(t *testing.T) {
	store := storage.NewMemoryStore()
	auth, _ := newAuthService(store, fixedSource(123456))

	otps := NewOTPServiceWithSource(store, fixedSource(777777))
	if _, err := otps.CreateForLogin("555"); err != nil {
		t.Fatalf("CreateForLogin: %v", err)
	}

	// The OTP is valid but there is no backing account: distinct failure.
	if _, err := auth.ConfirmLogin("555", "777777"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("got err=%v, want ErrUserNotFound", err)
	}
}

func TestConfirmSignupReplayFails(t *testing.T) {
	store := storage.NewMemoryStore()
	auth, _ := newAuthService(store, fixedSource(123456))

	if _, err := auth.Signup("555", "Ann", "a@x.com"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := auth.ConfirmSignup("555", "123456"); err != nil {
		t.Fatalf("ConfirmSignup: %v", err)
	}
	if _, err := auth.ConfirmSignup("555", "123456"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("replayed confirm should fail, got err=%v", err)
	}
}

func TestOTPExpiryEndsTheFlow(t *testing.T) {
	store := storage.NewMemoryStoreWithTTL(20 * time.Millisecond)
	auth, _ := newAuthService(store, fixedSource(123456))

	if _, err := auth.Signup("555", "Ann", "a@x.com"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, err := auth.ConfirmSignup("555", "123456"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expired code should fail, got err=%v", err)
	}
}
