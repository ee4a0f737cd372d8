package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/pkg/authsdk"
	"github.com/slimyai/gatehouse/pkg/httpx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

type LoginHandler struct {
	LoginService  *service.LoginService
	SecureCookies bool
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with username and password (plus a TOTP code once enrolled). On success the session token is set as an httpOnly cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"user, expires_at"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		429		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "username and password are required",
		})
		return
	}

	meta := service.SessionMetadata{
		IPAddress: httpx.ClientIP(r),
		UserAgent: r.UserAgent(),
	}

	token, session, err := h.LoginService.Login(ctx, req.Username, req.Password, req.TOTPCode, meta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRateLimited):
			httpx.WriteJSON(w, http.StatusTooManyRequests, authsdk.ErrorResponse{
				Error:            "rate_limited",
				ErrorDescription: "Too many failed attempts, try again later",
			})
		case errors.Is(err, service.ErrTOTPRequired):
			httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
				Error:            "totp_required",
				ErrorDescription: "A TOTP code is required for this account",
			})
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
				Error:            "invalid_credentials",
				ErrorDescription: "Username or password is incorrect",
			})
		case errors.Is(err, service.ErrAccountDisabled):
			httpx.WriteJSON(w, http.StatusForbidden, authsdk.ErrorResponse{
				Error:            "disabled",
				ErrorDescription: "This account has been disabled",
			})
		default:
			log.Error("login failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to process login",
			})
		}
		return
	}

	setSessionCookie(w, token, session.ExpiresAt, h.SecureCookies)

	user, err := h.LoginService.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		log.Error("failed to load user after login", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to process login",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		User:      authsdk.UserInfo{ID: user.ID, Username: user.Username},
		ExpiresAt: session.ExpiresAt.Unix(),
	})
}
