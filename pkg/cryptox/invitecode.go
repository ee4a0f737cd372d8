package cryptox

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// inviteCodeAlphabet deliberately excludes visually ambiguous characters
// (0/O, 1/I/l) so codes survive manual transcription.
const inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const inviteCodeLength = 16

// GenerateInviteCode produces a human-readable 16-character invite code in
// the form XXXX-XXXX-XXXX-XXXX. The hyphens are cosmetic; hash the output of
// NormalizeInviteCode, never the raw display form.
func GenerateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}

	chars := make([]byte, inviteCodeLength)
	for i, b := range buf {
		chars[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}

	code := string(chars)
	return fmt.Sprintf("%s-%s-%s-%s", code[0:4], code[4:8], code[8:12], code[12:16]), nil
}

// NormalizeInviteCode strips hyphens and whitespace and uppercases the input,
// producing the canonical form a code is hashed under. Users may paste codes
// with or without the grouping hyphens.
func NormalizeInviteCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	code = strings.ReplaceAll(code, "-", "")
	code = strings.ReplaceAll(code, " ", "")
	return code
}

// HashInviteCode hashes the normalized form of an invite code.
func HashInviteCode(code string) string {
	return HashToken(NormalizeInviteCode(code))
}
