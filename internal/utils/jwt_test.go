package utils

import (
	"testing"
	"time"

	"stablemart/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateSessionToken(&models.SessionClaims{
		UserID:  7,
		Address: "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
		Role:    models.RoleBuyer,
	})
	require.NoError(t, err)

	claims, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "0x70997970c51812dc3a010c7d01b50e0d17dc79c8", claims.Address)
	assert.Equal(t, models.RoleBuyer, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestParseSessionToken_Invalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseSessionToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewWithClaims(jwt.SigningMethodHS256, models.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UserID: 7,
		})
		signed, err := other.SignedString([]byte("different-secret"))
		require.NoError(t, err)

		_, err = ParseSessionToken(signed)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, models.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
			UserID: 7,
		})
		signed, err := expired.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = ParseSessionToken(signed)
		assert.Error(t, err)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, models.SessionClaims{UserID: 7})
		signed, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ParseSessionToken(signed)
		assert.Error(t, err)
	})
}

func TestGenerateSessionToken_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateSessionToken(&models.SessionClaims{UserID: 1})
	assert.Error(t, err)
}
