package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the server's JWT payload the client cares about.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Inspect decodes the token payload without verifying the signature.
// Verification is the server's job; the client only reads claims to show
// session details and to detect an already-expired token before a request.
func Inspect(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

// Expired reports whether the claims carry an expiry in the past.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Time.Before(now)
}
