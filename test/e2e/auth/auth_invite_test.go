package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slimyai/gatehouse/pkg/authsdk"
)

func TestTraderInviteFlow(t *testing.T) {
	ts := startServer(t)
	admin := ts.adminToken(t)

	t.Run("minting requires an admin token", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/invites/mint",
			authsdk.InviteMintRequest{Audience: "trader"}, nil, requestOpts{})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	var mint authsdk.InviteMintResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/invites/mint",
		authsdk.InviteMintRequest{Audience: "trader", MaxUses: 1, Note: "e2e"},
		&mint, requestOpts{bearer: admin})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, mint.Code)
	require.Equal(t, 1, mint.MaxUses)

	t.Run("validate reports a fresh invite", func(t *testing.T) {
		var out authsdk.InviteValidateResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/invites/validate",
			authsdk.InviteValidateRequest{Code: mint.Code}, &out, requestOpts{})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, out.Valid)
		require.Equal(t, "trader", out.Audience)
		require.Equal(t, 1, out.RemainingUses)
	})

	var reg authsdk.RegisterResponse
	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/register",
		authsdk.RegisterRequest{InviteCode: mint.Code, Username: "mallory", Password: "hunter2hunter2"},
		&reg, requestOpts{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "mallory", reg.Username)
	require.NotEmpty(t, reg.UserID)

	t.Run("registration issues a session", func(t *testing.T) {
		cookie := sessionCookie(t, resp)
		var sess authsdk.SessionResponse
		r := doJSON(t, http.MethodGet, ts.URL+"/v1/auth/session", nil, &sess,
			requestOpts{cookie: cookie})
		require.Equal(t, http.StatusOK, r.StatusCode)
		require.True(t, sess.Authenticated)
		require.Equal(t, reg.UserID, sess.User.ID)
	})

	t.Run("exhausted invite is rejected", func(t *testing.T) {
		var out authsdk.ErrorResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/register",
			authsdk.RegisterRequest{InviteCode: mint.Code, Username: "other", Password: "hunter2hunter2"},
			&out, requestOpts{})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "invalid_invite", out.Error)
	})

	t.Run("registered user can log in and out", func(t *testing.T) {
		var login authsdk.LoginResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login",
			authsdk.LoginRequest{Username: "mallory", Password: "hunter2hunter2"},
			&login, requestOpts{})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, reg.UserID, login.User.ID)
		cookie := sessionCookie(t, resp)

		var sess authsdk.SessionResponse
		resp = doJSON(t, http.MethodGet, ts.URL+"/v1/auth/session", nil, &sess,
			requestOpts{cookie: cookie})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, sess.Authenticated)
		require.Equal(t, "mallory", sess.User.Username)

		resp = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/logout", nil, nil,
			requestOpts{cookie: cookie})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, http.MethodGet, ts.URL+"/v1/auth/session", nil, &sess,
			requestOpts{cookie: cookie})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.False(t, sess.Authenticated)
	})
}

func TestInviteRevocation(t *testing.T) {
	ts := startServer(t)
	admin := ts.adminToken(t)

	var mint authsdk.InviteMintResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/invites/mint",
		authsdk.InviteMintRequest{Audience: "trader", MaxUses: 5},
		&mint, requestOpts{bearer: admin})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/invites/"+mint.InviteID+"/revoke",
		nil, nil, requestOpts{bearer: admin})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var out authsdk.InviteValidateResponse
	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/invites/validate",
		authsdk.InviteValidateRequest{Code: mint.Code}, &out, requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.False(t, out.Valid)
	require.Contains(t, out.Reason, "revoked")

	t.Run("unknown invite id yields 404", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/invites/nope/revoke",
			nil, nil, requestOpts{bearer: admin})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("listing shows the revoked invite", func(t *testing.T) {
		var list authsdk.InviteListResponse
		resp := doJSON(t, http.MethodGet, ts.URL+"/v1/invites?audience=trader", nil, &list,
			requestOpts{bearer: admin})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, list.Invites, 1)
		require.Equal(t, mint.InviteID, list.Invites[0].ID)
		require.NotZero(t, list.Invites[0].RevokedAt)
	})
}

func TestOwnerInviteFlow(t *testing.T) {
	ts := startServer(t)
	admin := ts.adminToken(t)

	var mint authsdk.InviteMintResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/invites/mint",
		authsdk.InviteMintRequest{Audience: "owner", MaxUses: 2},
		&mint, requestOpts{bearer: admin})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var redeemed authsdk.OwnerRedeemResponse
	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/invites/redeem",
		authsdk.OwnerRedeemRequest{Code: mint.Code, Email: "Boss@Example.COM"},
		&redeemed, requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "boss@example.com", redeemed.Email)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		var out authsdk.ErrorResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/invites/redeem",
			authsdk.OwnerRedeemRequest{Code: mint.Code, Email: "boss@example.com"},
			&out, requestOpts{})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		require.Equal(t, "already_listed", out.Error)
	})

	t.Run("owner invite cannot register traders", func(t *testing.T) {
		var out authsdk.ErrorResponse
		resp := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/register",
			authsdk.RegisterRequest{InviteCode: mint.Code, Username: "sneaky", Password: "hunter2hunter2"},
			&out, requestOpts{})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "invalid_invite", out.Error)
	})
}
