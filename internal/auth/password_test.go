package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("pw123", 4)
	require.NoError(t, err)
	h2, err := HashPassword("pw123", 4)
	require.NoError(t, err)

	// Distinct salts yield distinct digests, but both verify.
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword(h1, "pw123"))
	assert.True(t, VerifyPassword(h2, "pw123"))
}

func TestVerifyPasswordWrong(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("pw123", 4)
	require.NoError(t, err)

	assert.False(t, VerifyPassword(h, "pw124"))
	assert.False(t, VerifyPassword(h, ""))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	t.Parallel()

	assert.False(t, VerifyPassword("", "pw123"))
	assert.False(t, VerifyPassword("not-a-bcrypt-digest", "pw123"))
}
