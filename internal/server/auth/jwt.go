// Package auth issues and verifies the HS256 access tokens carried as
// bearer credentials by the admin dashboard and CLI.
package auth

import (
	"errors"
	"time"

	"github.com/aquapure/backoffice/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the registered claims with the admin's identifier.
type Claims struct {
	jwt.RegisteredClaims
	AdminID string `json:"adminId"`
}

// GenerateToken signs a token for adminID valid for validityDuration.
func GenerateToken(adminID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		AdminID: adminID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAdminIDFromToken verifies tokenString and returns the admin ID it was
// issued for. Expired tokens map to common.ErrTokenExpired, everything else
// invalid to common.ErrInvalidToken.
func GetAdminIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.AdminID, nil
}
