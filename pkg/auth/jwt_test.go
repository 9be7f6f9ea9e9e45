package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testClaims() Claims {
	return Claims{
		UserID: "user-123",
		Email:  "user@example.com",
		Roles:  []string{"authenticated"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wishbloom",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestValidateToken(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret, Issuer: "wishbloom"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		claims, err := validator.ValidateToken(signToken(t, testSecret, testClaims()))
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
	})

	t.Run("strips bearer prefix", func(t *testing.T) {
		_, err := validator.ValidateToken("Bearer " + signToken(t, testSecret, testClaims()))
		assert.NoError(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := validator.ValidateToken("")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := testClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

		_, err := validator.ValidateToken(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := validator.ValidateToken(signToken(t, "other-secret", testClaims()))
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := testClaims()
		claims.Issuer = "someone-else"

		_, err := validator.ValidateToken(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := testClaims()
		claims.UserID = ""

		_, err := validator.ValidateToken(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := validator.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJWTValidator(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)
}
