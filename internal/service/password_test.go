package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2secret")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2secret", hash)

	require.True(t, CheckPassword(hash, "hunter2secret"))
	require.False(t, CheckPassword(hash, "wrong-password"))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	require.Error(t, err)
}

func TestCheckPasswordBadHash(t *testing.T) {
	require.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
}
