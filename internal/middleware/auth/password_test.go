package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "correct horse"))
	assert.Error(t, VerifyPassword(hash, "wrong horse"))
}

func TestHashPasswordTooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestUnusablePassword(t *testing.T) {
	a, err := UnusablePassword()
	require.NoError(t, err)
	b, err := UnusablePassword()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Error(t, VerifyPassword(a, "password"))
}
