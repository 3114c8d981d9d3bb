package auth

import (
	"strings"

	"identity/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// uuidTokenGenerator produces opaque tokens from two random UUIDs.
type uuidTokenGenerator struct{}

// NewVerificationTokenGenerator is the constructor for the email verification token generator.
func NewVerificationTokenGenerator() service.VerificationTokenGenerator {
	return uuidTokenGenerator{}
}

// Generate returns a 64 character hexadecimal token.
func (uuidTokenGenerator) Generate() (string, error) {
	first, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate verification token")
	}
	second, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate verification token")
	}

	return strings.ReplaceAll(first.String()+second.String(), "-", ""), nil
}
