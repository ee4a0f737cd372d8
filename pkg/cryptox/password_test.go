package cryptox

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Keep the pepper out of the working directory during tests.
	dir, err := filepath.Abs("testdata")
	if err == nil {
		SetPepperPath(filepath.Join(dir, "pepper"))
	}
	m.Run()
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.True(t, VerifyPassword("correct horse battery staple", hash))
	require.False(t, VerifyPassword("wrong password", hash))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2, "salts must differ between hashes")
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"garbage", "not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=64,t=3,p=4$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=64,t=3,p=4$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=64,t=3,p=4$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, VerifyPassword("anything", tt.hash))
		})
	}
}
