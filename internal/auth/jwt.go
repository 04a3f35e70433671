// Package auth issues and parses the signed, time-limited session tokens
// that bind a request to a user.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/RecipeShare/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the registered claims plus the bound user identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenManager signs and verifies HS256 tokens with a shared secret.
// Expiry is fixed when a token is issued and is never extended.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. ttl is the lifetime given to
// every issued token.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a freshly signed token bound to userID.
func (m *TokenManager) Issue(userID string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of tokenString and returns the
// bound user identifier. It returns apperrors.ErrExpiredToken for a
// well-signed but expired token and apperrors.ErrInvalidToken otherwise.
func (m *TokenManager) Parse(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrExpiredToken
		}
		return "", apperrors.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", apperrors.ErrInvalidToken
	}

	return claims.UserID, nil
}
