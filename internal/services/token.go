package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService mints and validates the bearer tokens handed out after a
// successful OTP confirmation.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

type tokenClaims struct {
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

// NewTokenService creates a token service signing with secret. Tokens stay
// valid for ttl, after which the user has to authenticate again.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateToken signs a token carrying the user identity.
func (s *TokenService) GenerateToken(userID, phone string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Phone: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies signature and expiry and returns the user ID.
// Malformed input reports !ok instead of an error so the gate can respond
// uniformly.
func (s *TokenService) ValidateToken(tokenString string) (string, bool) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
