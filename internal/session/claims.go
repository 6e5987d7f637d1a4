package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the custom claims the API embeds in every access token.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
	jwt.RegisteredClaims
}

// Claims decodes the access token WITHOUT verifying its signature. The
// console has no signing secret and never makes validity decisions from
// this — it exists only to show "sesión de X, expira a las Y" style info.
func Claims(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session: token ilegible: %w", err)
	}
	return claims, nil
}

// ExpiresAt returns the token's exp claim, or zero time when absent.
func (c *TokenClaims) ExpiresAt() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}
