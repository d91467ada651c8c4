package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "my-secret-key"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-123", secret, DefaultTokenTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestGenerateJWTSetsOneHourExpiry(t *testing.T) {
	token, err := GenerateJWT("user-123", secret, DefaultTokenTTL)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestGenerateJWTRequiresSubject(t *testing.T) {
	_, err := GenerateJWT("", secret, DefaultTokenTTL)
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-123", secret, DefaultTokenTTL)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseJWTRejectsTamperedPayload(t *testing.T) {
	token, err := GenerateJWT("user-123", secret, DefaultTokenTTL)
	require.NoError(t, err)
	other, err := GenerateJWT("user-456", secret, DefaultTokenTTL)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = ParseJWT(tampered, secret)
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	token, err := GenerateJWT("user-123", secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWTRejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = ParseJWT(token, secret)
	assert.Error(t, err)
}

func TestParseJWTRejectsMissingExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-123"}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = ParseJWT(token, secret)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", secret)
	assert.Error(t, err)
}
