package auth

import (
	"testing"

	"identity/config"
	domainerrors "identity/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(policy *config.PasswordStrengthConfig) *bcryptHasher {
	cfg := &config.Config{
		Auth:             &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: policy,
	}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher(nil)

	strongPassword := "StrongPass123!"
	hash, err := hasher.Hash(strongPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, strongPassword, hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	// Salted: hashing twice yields different digests.
	again, err := hasher.Hash(strongPassword)
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher(nil)
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPassword123!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "not-a-bcrypt-hash"))
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "below minimum", cost: 1, want: bcrypt.MinCost},
		{name: "above maximum", cost: 99, want: bcrypt.MaxCost},
		{name: "unset", cost: 0, want: bcrypt.DefaultCost},
		{name: "in range", cost: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: tt.cost}}).(*bcryptHasher)
			assert.Equal(t, tt.want, hasher.cost)
		})
	}
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newTestHasher(&config.PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        64,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	})

	weakPasswords := []string{
		"",             // Empty
		"Ab1!",         // Too short
		"PASSWORD123!", // No lowercase
		"password123!", // No uppercase
		"PasswordABC!", // No numbers
		"Password123",  // No special characters
	}

	for _, weakPassword := range weakPasswords {
		err := hasher.ValidatePasswordStrength(weakPassword)
		require.Error(t, err, "Expected error for weak password: %q", weakPassword)
		assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
		assert.True(t, errors.Is(err, domainerrors.ErrBadRequest))
	}

	assert.NoError(t, hasher.ValidatePasswordStrength("StrongPass123!"))
}

func TestBcryptHasher_ValidatePasswordStrengthWithoutPolicy(t *testing.T) {
	hasher := newTestHasher(nil)

	assert.NoError(t, hasher.ValidatePasswordStrength("x"))
	assert.Error(t, hasher.ValidatePasswordStrength(""))

	tooLong := make([]byte, bcryptMaxPasswordBytes+1)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	assert.Error(t, hasher.ValidatePasswordStrength(string(tooLong)))
}
