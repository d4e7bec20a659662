// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	hash, err := manager.HashPassword("correct-horse-battery")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse-battery", hash)

	assert.NoError(t, manager.VerifyPassword("correct-horse-battery", hash))
	assert.Error(t, manager.VerifyPassword("wrong-password", hash))
}

func TestHashPasswordRejectsInvalid(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	_, err := manager.HashPassword("short")
	assert.Error(t, err)
}

func TestValidatePassword(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	assert.NoError(t, manager.ValidatePassword("12345678"))
	assert.Error(t, manager.ValidatePassword("1234567"))
	assert.Error(t, manager.ValidatePassword(""))
	assert.Error(t, manager.ValidatePassword(strings.Repeat("x", 129)))
	assert.NoError(t, manager.ValidatePassword(strings.Repeat("x", 128)))
}

func TestGenerateTemporaryPassword(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	first, err := manager.GenerateTemporaryPassword()
	require.NoError(t, err)
	assert.Len(t, first, 12)

	second, err := manager.GenerateTemporaryPassword()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
