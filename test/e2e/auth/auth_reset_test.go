package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slimyai/gatehouse/pkg/authsdk"
)

func TestPasswordResetFlow(t *testing.T) {
	ts := startServer(t)
	admin := ts.adminToken(t)

	var mint authsdk.InviteMintResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/invites/mint",
		authsdk.InviteMintRequest{Audience: "trader"},
		&mint, requestOpts{bearer: admin})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/register",
		authsdk.RegisterRequest{InviteCode: mint.Code, Username: "forgetful", Password: "old-password-12"},
		nil, requestOpts{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var login authsdk.LoginResponse
	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login",
		authsdk.LoginRequest{Username: "forgetful", Password: "old-password-12"},
		&login, requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	t.Run("request never reveals account existence", func(t *testing.T) {
		var out authsdk.PasswordResetAccepted
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/password-reset/request",
			authsdk.PasswordResetRequest{Username: "no-such-user"}, &out, requestOpts{})
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
		require.Equal(t, "accepted", out.Status)

		resp = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/password-reset/request",
			authsdk.PasswordResetRequest{Username: "forgetful"}, &out, requestOpts{})
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
		require.Equal(t, "accepted", out.Status)
	})

	// The token travels out of band. Mint one directly; it supersedes any
	// token from the HTTP request above.
	token, err := ts.Reset.CreateResetToken(context.Background(), "forgetful")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("garbage token is rejected", func(t *testing.T) {
		var out authsdk.ErrorResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/password-reset/execute",
			authsdk.PasswordResetExecuteRequest{Token: "not-a-token", NewPassword: "new-password-12"},
			&out, requestOpts{})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "invalid_token", out.Error)
	})

	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/password-reset/execute",
		authsdk.PasswordResetExecuteRequest{Token: token, NewPassword: "new-password-12"},
		nil, requestOpts{})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	t.Run("reset revokes existing sessions", func(t *testing.T) {
		var sess authsdk.SessionResponse
		resp := doJSON(t, http.MethodGet, ts.URL+"/v1/auth/session", nil, &sess,
			requestOpts{cookie: cookie})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.False(t, sess.Authenticated)
	})

	t.Run("old password no longer works", func(t *testing.T) {
		var out authsdk.ErrorResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login",
			authsdk.LoginRequest{Username: "forgetful", Password: "old-password-12"},
			&out, requestOpts{})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "invalid_credentials", out.Error)
	})

	t.Run("new password logs in", func(t *testing.T) {
		var out authsdk.LoginResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login",
			authsdk.LoginRequest{Username: "forgetful", Password: "new-password-12"},
			&out, requestOpts{})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "forgetful", out.User.Username)
	})

	t.Run("token is single use", func(t *testing.T) {
		var out authsdk.ErrorResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/password-reset/execute",
			authsdk.PasswordResetExecuteRequest{Token: token, NewPassword: "another-pass-12"},
			&out, requestOpts{})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "token_used", out.Error)
	})
}
