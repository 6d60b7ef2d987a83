package auth

import "papertrail/internal/domain/models"

// TokenVerifier defines JWT verification. The abstraction keeps the
// middleware agnostic to where the signing keys come from.
type TokenVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed
	// claims. Returns an error if the token is invalid or expired.
	VerifyToken(tokenString string) (*models.UserClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
