package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// OrgClaims are the JWT claims carried by API tokens. OrgID scopes every
// request; middleware compares it against the org in the request path.
type OrgClaims struct {
	OrgID string `json:"org"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new JWT token for a user scoped to one org.
func GenerateJWT(userID string, orgID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	claims := OrgClaims{
		OrgID: orgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and
// standard claims, and returns the org-scoped claims.
func ParseAndValidateJWT(tokenString string, secretKey string) (*OrgClaims, error) {
	claims := &OrgClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err // Includes token expired, signature invalid, etc.
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
