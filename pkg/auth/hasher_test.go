package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	hashed, err := h.Hash("Password123!")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)

	assert.NotEqual(t, "Password123!", hashed)
	assert.True(t, h.Verify("Password123!", hashed))
	assert.False(t, h.Verify("password123!", hashed))
}

func TestBcryptHasher_SaltPerCall(t *testing.T) {
	h := NewBcryptHasher()

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	// Fresh salt per call: different strings, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same-password", first))
	assert.True(t, h.Verify("same-password", second))
}

func TestBcryptHasher_MalformedHashIsMismatch(t *testing.T) {
	h := NewBcryptHasher()

	assert.False(t, h.Verify("whatever", ""))
	assert.False(t, h.Verify("whatever", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("whatever", "$2a$10$tooshort"))
}
