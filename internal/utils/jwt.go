package utils

import (
	"errors" // Error inspection
	"fmt"    // Error wrapping
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// DefaultTokenTTL is how long a session token stays valid
const DefaultTokenTTL = time.Hour

// ErrEmptySubject is returned when a token carries no user id
var ErrEmptySubject = errors.New("token has no subject")

// GenerateJWT creates a token whose subject is the user id
func GenerateJWT(userID, secret string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", ErrEmptySubject
	}
	now := time.Now()
	// Standard claims only; the user id travels as the subject
	claims := jwt.RegisteredClaims{
		Subject:   userID,                           // Authenticated user
		IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Fixed lifetime
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT verifies signature and expiry and returns the user id
func ParseJWT(tokenStr, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	keyFunc := func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}
	token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // Reject alg switching
		jwt.WithExpirationRequired(),                                  // Tokens without exp are refused
	)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return "", jwt.ErrSignatureInvalid
	}
	if claims.Subject == "" {
		return "", ErrEmptySubject
	}
	return claims.Subject, nil
}
