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

type ResetRequestHandler struct {
	ResetService *service.ResetService
}

// ServeHTTP godoc
//
//	@Summary		Password Reset Request Endpoint
//	@Description	Issue a reset token for the username. The response is identical whether or not the account exists; the token is delivered out of band, never in this response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.PasswordResetRequest	true	"Username"
//	@Success		202		{object}	authsdk.PasswordResetAccepted	"status"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/auth/password-reset/request [post].
func (h *ResetRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.Username == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "username is required",
		})
		return
	}

	// Internal failures are logged but not surfaced: the response must be
	// indistinguishable for existing and non-existing accounts.
	if _, err := h.ResetService.CreateResetToken(ctx, req.Username); err != nil {
		log.Error("failed to create reset token", "err", err)
	}

	httpx.WriteJSON(w, http.StatusAccepted, authsdk.PasswordResetAccepted{Status: "accepted"})
}

type ResetExecuteHandler struct {
	ResetService *service.ResetService
}

// ServeHTTP godoc
//
//	@Summary		Password Reset Execution Endpoint
//	@Description	Consume a reset token: rotate the password, revoke every session of the user, and burn the token as one transaction.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	authsdk.PasswordResetExecuteRequest	true	"Token and new password"
//	@Success		204		"no content"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/password-reset/execute [post].
func (h *ResetExecuteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.PasswordResetExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "token and new_password are required",
		})
		return
	}

	if err := h.ResetService.ExecuteReset(ctx, req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenNotFound):
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "invalid_token",
				ErrorDescription: "Reset token not found",
			})
		case errors.Is(err, service.ErrResetTokenUsed):
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "token_used",
				ErrorDescription: "Reset token has already been used",
			})
		case errors.Is(err, service.ErrResetTokenExpired):
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "token_expired",
				ErrorDescription: "Reset token has expired",
			})
		default:
			log.Error("password reset failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to reset password",
			})
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
