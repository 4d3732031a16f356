package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of a signed session token. Tokens are
// stateless: validation is a signature and expiry check plus a user load.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID  uint   `json:"user_id"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

// IsAdmin reports whether the claims carry the admin role.
func (c *SessionClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
