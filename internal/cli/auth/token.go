package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the expiry timestamp from a bearer token without
// verifying its signature. The server remains the only authority on token
// validity; this is used purely for display (e.g. 'suds whoami').
func TokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()

	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token has no expiry claim")
	}

	return claims.ExpiresAt.Time, nil
}
