package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slimyai/gatehouse/pkg/authsdk"
)

func TestLoginLockout(t *testing.T) {
	ts := startServer(t)
	admin := ts.adminToken(t)

	var mint authsdk.InviteMintResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/invites/mint",
		authsdk.InviteMintRequest{Audience: "trader"},
		&mint, requestOpts{bearer: admin})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/register",
		authsdk.RegisterRequest{InviteCode: mint.Code, Username: "locky", Password: "correct-horse-battery"},
		nil, requestOpts{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Five failures from five different addresses lock the username.
	for i := 0; i < 5; i++ {
		var out authsdk.ErrorResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login",
			authsdk.LoginRequest{Username: "locky", Password: "wrong"},
			&out, requestOpts{ip: nextIP()})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "invalid_credentials", out.Error)
	}

	t.Run("locked username rejects even the right password", func(t *testing.T) {
		var out authsdk.ErrorResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login",
			authsdk.LoginRequest{Username: "locky", Password: "correct-horse-battery"},
			&out, requestOpts{ip: nextIP()})
		require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		require.Equal(t, "rate_limited", out.Error)
	})

	t.Run("other usernames are unaffected", func(t *testing.T) {
		var out authsdk.ErrorResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login",
			authsdk.LoginRequest{Username: "someone-else", Password: "wrong"},
			&out, requestOpts{ip: nextIP()})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "invalid_credentials", out.Error)
	})
}

func TestUnknownUsernameIsGeneric(t *testing.T) {
	ts := startServer(t)

	var out authsdk.ErrorResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login",
		authsdk.LoginRequest{Username: "ghost", Password: "whatever"},
		&out, requestOpts{})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "invalid_credentials", out.Error)
}
