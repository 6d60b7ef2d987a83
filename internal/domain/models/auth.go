package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims represents the JWT claims issued by the external identity
// provider. Only the fields the service reads are mapped.
type UserClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *UserClaims) GetUserID() string {
	return c.Subject
}
