package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	s := &Signer{Secret: []byte("test-secret"), Issuer: "gatehouse-test"}

	token, err := s.Sign("admin-1", "owner")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "admin-1", claims.Subject)
	require.Equal(t, "owner", claims.Role)
	require.Equal(t, "gatehouse-test", claims.Issuer)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	minter := &Signer{Secret: []byte("secret-a"), Issuer: "gatehouse-test"}
	checker := &Signer{Secret: []byte("secret-b"), Issuer: "gatehouse-test"}

	token, err := minter.Sign("admin-1", "owner")
	require.NoError(t, err)

	_, err = checker.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsWrongIssuer(t *testing.T) {
	minter := &Signer{Secret: []byte("secret"), Issuer: "someone-else"}
	checker := &Signer{Secret: []byte("secret"), Issuer: "gatehouse-test"}

	token, err := minter.Sign("admin-1", "owner")
	require.NoError(t, err)

	_, err = checker.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsExpired(t *testing.T) {
	s := &Signer{Secret: []byte("secret"), Issuer: "gatehouse-test", TTL: -time.Minute}

	token, err := s.Sign("admin-1", "owner")
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSign_RequiresSecret(t *testing.T) {
	s := &Signer{Issuer: "gatehouse-test"}
	_, err := s.Sign("admin-1", "owner")
	require.ErrorIs(t, err, ErrNoSecret)
}
