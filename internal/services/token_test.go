package services

import (
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.GenerateToken("u1", "555")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, ok := svc.ValidateToken(token)
	if !ok {
		t.Fatal("round-tripped token should validate")
	}
	if userID != "u1" {
		t.Fatalf("got userID %q, want %q", userID, "u1")
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.GenerateToken("u1", "555")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, ok := svc.ValidateToken(tampered); ok {
		t.Fatal("tampered token should not validate")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	minted := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := minted.GenerateToken("u1", "555")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, ok := verifier.ValidateToken(token); ok {
		t.Fatal("token signed with another secret should not validate")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.GenerateToken("u1", "555")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, ok := svc.ValidateToken(token); ok {
		t.Fatal("expired token should not validate")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b.c", strings.Repeat("x", 4096)} {
		if _, ok := svc.ValidateToken(input); ok {
			t.Fatalf("garbage input %q should not validate", input)
		}
	}
}
