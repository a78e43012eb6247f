package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Set up a temporary pepper file for testing
	pepperPath := filepath.Join(os.TempDir(), "todo-test-pepper")
	SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль密码"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
		})
	}
}

func TestHashPasswordIsRandomized(t *testing.T) {
	a, err := HashPassword("same-input")
	require.NoError(t, err)
	b, err := HashPassword("same-input")
	require.NoError(t, err)

	require.NotEqual(t, a, b, "two hashes of the same password must differ (random salt)")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		require.NoError(t, VerifyPassword("hunter22", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		require.Error(t, VerifyPassword("hunter23", hash))
	})

	t.Run("malformed hash", func(t *testing.T) {
		require.Error(t, VerifyPassword("hunter22", "not-a-phc-hash"))
		require.Error(t, VerifyPassword("hunter22", "$bcrypt$v=19$m=1,t=1,p=1$xx$yy"))
	})
}
