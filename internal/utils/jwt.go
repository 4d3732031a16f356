package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"stablemart/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenTTL = 24 * time.Hour

// GenerateSessionToken signs a session token for the given claims.
// The JWT secret is expected in the environment variable JWT_SECRET.
func GenerateSessionToken(claims *models.SessionClaims) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}

	now := time.Now()
	sessionClaims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "stablemart-api",
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		},
		UserID:  claims.UserID,
		Address: claims.Address,
		Role:    claims.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims)
	return token.SignedString([]byte(jwtSecret))
}

// ParseSessionToken parses and validates a session token string.
// Expired or tampered tokens return an error.
func ParseSessionToken(tokenStr string) (*models.SessionClaims, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
