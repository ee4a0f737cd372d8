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

type RegisterHandler struct {
	InviteService  *service.InviteService
	SessionService *service.SessionService
	SecureCookies  bool
}

// ServeHTTP godoc
//
//	@Summary		Trader Registration Endpoint
//	@Description	Redeem a trader invite code into a new account. The invite use is consumed atomically with the account creation, and a session is issued immediately.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest		true	"Invite code and credentials"
//	@Success		201		{object}	authsdk.RegisterResponse	"user_id, username"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	user, err := h.InviteService.RedeemTraderInvite(ctx, req.InviteCode, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "invite_code, username and password are required",
			})
		case errors.Is(err, service.ErrInvalidUsername), errors.Is(err, service.ErrInvalidPassword):
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: err.Error(),
			})
		case errors.Is(err, service.ErrInviteNotFound), errors.Is(err, service.ErrWrongAudience):
			// One generic rejection; the validate endpoint exists for
			// detailed pre-flight checks.
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "invalid_invite",
				ErrorDescription: "Invite code is not valid",
			})
		case errors.Is(err, service.ErrUsernameAlreadyTaken):
			httpx.WriteJSON(w, http.StatusConflict, authsdk.ErrorResponse{
				Error:            "username_taken",
				ErrorDescription: "Username already taken",
			})
		default:
			log.Error("registration failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to register",
			})
		}
		return
	}

	// Issue a session straight away so the new account lands logged in.
	// A failure here is not a registration failure; the user can still log
	// in normally.
	meta := service.SessionMetadata{
		IPAddress: httpx.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
	if token, session, err := h.SessionService.CreateSession(ctx, user.ID, meta); err != nil {
		log.Error("failed to create session after registration", "err", err)
	} else {
		setSessionCookie(w, token, session.ExpiresAt, h.SecureCookies)
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
	})
}
