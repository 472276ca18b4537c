package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims issued to an account. Subject carries the account ID.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new HS256 token for the account and role.
// It returns the signed token and its expiry.
func GenerateJWT(accountID string, role domain.Role, secret string, expiryDuration time.Duration, issuer string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(expiryDuration)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims,
// and checks the role claim is a known role.
func ParseAndValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	if !claims.Role.IsValid() {
		return nil, errors.New("token carries an unknown role")
	}
	return claims, nil
}
