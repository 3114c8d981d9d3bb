package service

import (
	"time"

	"identity/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by an access token.
// The subject claim holds the user ID.
type Claims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService defines the interface for issuing and validating bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue signs a time-bounded access token for the user.
	Issue(user *entity.User) (token string, expiresAt time.Time, err error)

	// Validate checks signature, issuer, audience and expiry and returns the claims.
	Validate(tokenString string) (*Claims, error)
}

// VerificationTokenGenerator produces the one-off tokens handed out by the
// email confirmation and password reset flows.
type VerificationTokenGenerator interface {
	Generate() (string, error)
}
