package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateInviteCode(t *testing.T) {
	code, err := GenerateInviteCode()
	require.NoError(t, err)
	require.Regexp(t, "^[A-Z2-9]{4}-[A-Z2-9]{4}-[A-Z2-9]{4}-[A-Z2-9]{4}$", code)

	// None of the ambiguous characters may ever appear.
	for _, c := range "0O1Il" {
		require.NotContains(t, code, string(c))
	}
}

func TestGenerateInviteCode_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		_, dup := seen[code]
		require.False(t, dup)
		seen[code] = struct{}{}
	}
}

func TestNormalizeInviteCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"display form", "ABCD-EFGH-JKMN-PQRS", "ABCDEFGHJKMNPQRS"},
		{"lowercase with spaces", "  abcd efgh-jkmn-pqrs ", "ABCDEFGHJKMNPQRS"},
		{"already normalized", "ABCDEFGHJKMNPQRS", "ABCDEFGHJKMNPQRS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeInviteCode(tt.in))
		})
	}
}

func TestHashInviteCode_FormInsensitive(t *testing.T) {
	code, err := GenerateInviteCode()
	require.NoError(t, err)

	bare := strings.ReplaceAll(strings.ToLower(code), "-", "")
	require.Equal(t, HashInviteCode(code), HashInviteCode(bare))
}
