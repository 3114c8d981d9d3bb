package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationTokenGenerator_Generate(t *testing.T) {
	generator := NewVerificationTokenGenerator()

	seen := make(map[string]struct{})
	for range 50 {
		token, err := generator.Generate()
		require.NoError(t, err)

		assert.Len(t, token, 64)
		_, err = hex.DecodeString(token)
		assert.NoError(t, err)

		_, dup := seen[token]
		assert.False(t, dup)
		seen[token] = struct{}{}
	}
}
